package format_test

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
	"unicode"

	. "github.com/balajikasiraj07/sqlonline/pkg/format"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var spaces = FormatterOptions{IndentUnit: "    "}

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []string
	}{
		{
			name: "join group order limit",
			sql:  "select u.id, count(o.id) as orders from users u left join orders o on o.user_id = u.id group by u.id order by orders desc limit 10",
			expected: []string{
				"SELECT",
				"    u.id,",
				"    count(o.id) AS orders",
				"FROM users u",
				"LEFT JOIN orders o ON o.user_id = u.id",
				"GROUP BY",
				"    u.id",
				"ORDER BY",
				"    orders DESC",
				"LIMIT 10",
			},
		},
		{
			name: "mixed case keywords",
			sql:  "SeLeCt a FrOm t",
			expected: []string{
				"SELECT",
				"    a",
				"FROM t",
			},
		},
		{
			name: "distinct stays on the select line",
			sql:  "select distinct a, b from t",
			expected: []string{
				"SELECT DISTINCT",
				"    a,",
				"    b",
				"FROM t",
			},
		},
		{
			name: "or binds looser than and",
			sql:  "select * from t where a=1 or b=2 and c=3",
			expected: []string{
				"SELECT",
				"    *",
				"FROM t",
				"WHERE a=1",
				"    OR b=2 AND c=3",
			},
		},
		{
			name: "simple group stays inline",
			sql:  "select id from t where (a=1 or b=2) and c=3",
			expected: []string{
				"SELECT",
				"    id",
				"FROM t",
				"WHERE (a=1 OR b=2)",
				"    AND c=3",
			},
		},
		{
			name: "nested group is broken across lines",
			sql:  "select id from t where a=1 and (b=2 or (c=3 and d=4))",
			expected: []string{
				"SELECT",
				"    id",
				"FROM t",
				"WHERE a=1",
				"    AND (",
				"        b=2",
				"        OR (c=3 AND d=4)",
				"    )",
			},
		},
		{
			name: "between is not split",
			sql:  "select * from t where a between 1 and 5 and b = 2",
			expected: []string{
				"SELECT",
				"    *",
				"FROM t",
				"WHERE a BETWEEN 1 AND 5",
				"    AND b = 2",
			},
		},
		{
			name: "leading logical operator is dropped",
			sql:  "select a from t where and x=1",
			expected: []string{
				"SELECT",
				"    a",
				"FROM t",
				"WHERE x=1",
			},
		},
		{
			name: "searched case",
			sql:  "select id, case when score >= 90 then 'A' when score >= 80 then 'B' else 'C' end as grade from results",
			expected: []string{
				"SELECT",
				"    id,",
				"    CASE",
				"        WHEN score >= 90 THEN 'A'",
				"        WHEN score >= 80 THEN 'B'",
				"        ELSE 'C'",
				"    END AS grade",
				"FROM results",
			},
		},
		{
			name: "simple case keeps its subject",
			sql:  "select case status when 1 then 'on' else 'off' end from t",
			expected: []string{
				"SELECT",
				"    CASE status",
				"        WHEN 1 THEN 'on'",
				"        ELSE 'off'",
				"    END",
				"FROM t",
			},
		},
		{
			name: "nested case is one level deeper",
			sql:  "select case when a=1 then case when b=2 then 'x' else 'y' end else 'z' end from t",
			expected: []string{
				"SELECT",
				"    CASE",
				"        WHEN a=1 THEN CASE",
				"            WHEN b=2 THEN 'x'",
				"            ELSE 'y'",
				"        END",
				"        ELSE 'z'",
				"    END",
				"FROM t",
			},
		},
		{
			name: "window function",
			sql:  "select name, row_number() over (partition by dept order by salary desc) as rn from emp",
			expected: []string{
				"SELECT",
				"    name,",
				"    row_number() OVER (",
				"        PARTITION BY",
				"            dept",
				"        ORDER BY",
				"            salary DESC",
				"    ) AS rn",
				"FROM emp",
			},
		},
		{
			name: "subquery in where",
			sql:  "select id from users where id in (select user_id from orders where total > 100)",
			expected: []string{
				"SELECT",
				"    id",
				"FROM users",
				"WHERE id IN (",
				"        SELECT",
				"            user_id",
				"        FROM orders",
				"        WHERE total > 100",
				"    )",
			},
		},
		{
			name: "subquery in from",
			sql:  "select * from (select id from t) sub where sub.id > 1",
			expected: []string{
				"SELECT",
				"    *",
				"FROM (",
				"    SELECT",
				"        id",
				"    FROM t",
				") sub",
				"WHERE sub.id > 1",
			},
		},
		{
			name: "in list one value per line",
			sql:  "select * from t where status in ('a', 'b', 'c') and x = 1",
			expected: []string{
				"SELECT",
				"    *",
				"FROM t",
				"WHERE status IN (",
				"        'a',",
				"        'b',",
				"        'c'",
				"    )",
				"    AND x = 1",
			},
		},
		{
			name: "group on the where line is nested below the continuation lines",
			sql:  "select id from t where ((a=1 or b=2) and c=3) or d=4",
			expected: []string{
				"SELECT",
				"    id",
				"FROM t",
				"WHERE (",
				"        (a=1 OR b=2)",
				"        AND c=3",
				"    )",
				"    OR d=4",
			},
		},
		{
			name: "in list on the where line",
			sql:  "select id from t where x in (1, 2, 3) and f(a,b)=1",
			expected: []string{
				"SELECT",
				"    id",
				"FROM t",
				"WHERE x IN (",
				"        1,",
				"        2,",
				"        3",
				"    )",
				"    AND f(a,b)=1",
			},
		},
		{
			name: "case on the where line",
			sql:  "select id from t where case when a = 1 then b else c end = 1 and d = 2",
			expected: []string{
				"SELECT",
				"    id",
				"FROM t",
				"WHERE CASE",
				"        WHEN a = 1 THEN b",
				"        ELSE c",
				"    END = 1",
				"    AND d = 2",
			},
		},
		{
			name: "group on the having line",
			sql:  "select a, count(*) from t group by a having (count(*) > 1 or (a = 1 and b = 2)) and a <> 3",
			expected: []string{
				"SELECT",
				"    a,",
				"    count(*)",
				"FROM t",
				"GROUP BY",
				"    a",
				"HAVING (",
				"        count(*) > 1",
				"        OR (a = 1 AND b = 2)",
				"    )",
				"    AND a <> 3",
			},
		},
		{
			name: "malformed case is kept on one line",
			sql:  "select case x = 1 when 1 then 'a' end from t",
			expected: []string{
				"SELECT",
				"    CASE x = 1 WHEN 1 THEN 'a' END",
				"FROM t",
			},
		},
		{
			name: "single value in list stays inline",
			sql:  "select * from t where id in (1)",
			expected: []string{
				"SELECT",
				"    *",
				"FROM t",
				"WHERE id IN (1)",
			},
		},
		{
			name: "several ctes",
			sql:  "with a as (select 1), b as (select 2) select * from a, b",
			expected: []string{
				"WITH",
				"    a AS (",
				"        SELECT",
				"            1",
				"    ),",
				"    b AS (",
				"        SELECT",
				"            2",
				"    )",
				"SELECT",
				"    *",
				"FROM a, b",
			},
		},
		{
			name: "single cte stays inline",
			sql:  "with a as (select 1) select * from a",
			expected: []string{
				"WITH a AS (",
				"    SELECT",
				"        1",
				")",
				"SELECT",
				"    *",
				"FROM a",
			},
		},
		{
			name: "union all",
			sql:  "select a from t union all select b from u",
			expected: []string{
				"SELECT",
				"    a",
				"FROM t",
				"UNION ALL",
				"SELECT",
				"    b",
				"FROM u",
			},
		},
		{
			name: "update",
			sql:  "update t set a = 1, b = 'x' where id = 3",
			expected: []string{
				"UPDATE t",
				"SET",
				"    a = 1,",
				"    b = 'x'",
				"WHERE id = 3",
			},
		},
		{
			name: "insert values",
			sql:  "insert into t (a, b) values (1, 2), (3, 4)",
			expected: []string{
				"INSERT INTO t (a, b)",
				"VALUES",
				"    (1, 2),",
				"    (3, 4)",
			},
		},
		{
			name: "line comment ends its line",
			sql:  "select a, -- first\nb from t",
			expected: []string{
				"SELECT",
				"    a,",
				"    -- first",
				"    b",
				"FROM t",
			},
		},
		{
			name: "keywords inside strings are untouched",
			sql:  "select 'from where' as s from t",
			expected: []string{
				"SELECT",
				"    'from where' AS s",
				"FROM t",
			},
		},
		{
			name: "stray closing parenthesis is kept",
			sql:  "select a) from t",
			expected: []string{
				"SELECT",
				"    a)",
				"FROM t",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FormatString(spaces, tt.sql)
			require.NoError(t, err)
			require.Equal(t, strings.Join(tt.expected, "\n"), out)

			again, err := FormatString(spaces, out)
			require.NoError(t, err)
			require.Equal(t, out, again, "formatting is not idempotent")
		})
	}
}

func TestFormatString_endToEnd(t *testing.T) {
	out, err := FormatString(Defaults, "select id,name from users where age>18 and status='active'")
	require.NoError(t, err)
	require.Equal(t, "SELECT\n\tid,\n\tname\nFROM users\nWHERE age>18\n\tAND status='active'", out)
}

func TestFormatString_emptyInput(t *testing.T) {
	for _, sql := range []string{"", "   ", "\n\t \n"} {
		out, err := FormatString(Defaults, sql)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestFormatString_sizeGuard(t *testing.T) {
	sql := "select 1 from t"

	_, err := FormatString(FormatterOptions{MaxQuerySize: 10}, sql)
	require.ErrorIs(t, err, ErrInputTooLarge)

	var sizeErr *SizeLimitError
	require.True(t, errors.As(err, &sizeErr))
	require.Equal(t, len(sql), sizeErr.Size)
	require.Equal(t, 10, sizeErr.Limit)

	_, err = FormatString(FormatterOptions{MaxQuerySize: len(sql)}, sql)
	require.NoError(t, err)
}

func TestFormatString_invalidIndent(t *testing.T) {
	for _, unit := range []string{"x", " -", "\n"} {
		_, err := FormatString(FormatterOptions{IndentUnit: unit}, "select 1")
		require.ErrorIs(t, err, ErrInvalidIndentUnit, "unit %q", unit)
	}

	out, err := FormatString(FormatterOptions{IndentUnit: "  "}, "select a from t")
	require.NoError(t, err)
	require.Equal(t, "SELECT\n  a\nFROM t", out)
}

func TestFormatString_preservesProtectedText(t *testing.T) {
	sql := "select \"Mixed Case\", `weird ( col`, 'it''s (' from t /* keep  THIS */ where x = 'a, b'"

	out, err := FormatString(Defaults, sql)
	require.NoError(t, err)
	for _, literal := range []string{`"Mixed Case"`, "`weird ( col`", "'it''s ('", "/* keep  THIS */", "'a, b'"} {
		require.Contains(t, out, literal)
	}
}

func TestFormatString_unterminatedInput(t *testing.T) {
	out, err := FormatString(Defaults, "select a from t where b = 'open")
	require.NoError(t, err)
	require.Equal(t, "SELECT\n\ta\nFROM t\nWHERE b = 'open", out)

	out, err = FormatString(Defaults, "select count(a from t")
	require.NoError(t, err)
	require.Equal(t, "SELECT\n\tcount(a FROM t", out)
}

func TestFormatter_Format(t *testing.T) {
	formatter := New(Defaults)

	var buf bytes.Buffer
	require.NoError(t, formatter.Format(&buf, "select 1"))
	require.Equal(t, "SELECT\n\t1", buf.String())

	buf.Reset()
	require.NoError(t, Format(&buf, spaces, "select 1"))
	require.Equal(t, "SELECT\n    1", buf.String())

	buf.Reset()
	require.ErrorIs(t, Format(&buf, FormatterOptions{IndentUnit: "-"}, "select 1"), ErrInvalidIndentUnit)
	require.Empty(t, buf.String())
}

func TestFormatter_concurrentUse(t *testing.T) {
	formatter := New(Defaults)
	done := make(chan string, 8)

	for range 8 {
		go func() {
			out, _ := formatter.String("select a, b from t where x = 1 or y = 2")
			done <- out
		}()
	}

	first := <-done
	for range 7 {
		require.Equal(t, first, <-done)
	}
}

// nonSpace returns the non-whitespace characters of s, uppercased and sorted.
func nonSpace(s string) []rune {
	var out []rune
	for _, r := range strings.ToUpper(s) {
		if !unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return out
}

func TestFormatString_preservesContent(t *testing.T) {
	inputs := []string{
		"select u.id, count(o.id) as orders from users u left join orders o on o.user_id = u.id group by u.id order by orders desc limit 10",
		"select * from t where a=1 or b=2 and c=3",
		"select id from t where a=1 and (b=2 or (c=3 and d=4))",
		"select * from t where a between 1 and 5 and b = 2",
		"select case when a=1 then case when b=2 then 'x' else 'y' end else 'z' end from t",
		"select name, row_number() over (partition by dept order by salary desc) as rn from emp",
		"select * from (select id from t) sub where sub.id in (1, 2, 3)",
		"with a as (select 1), b as (select 2) select * from a, b",
		"insert into t (a, b) values (1, 2), (3, 4)",
		"update t set a = 1, b = 'x  y' where id = 3",
		"select a, -- first\nb from t /* keep  THIS */",
		"select a) from t where (b",
		"select case x = 1 when 1 then 'a' end, f(a, b,) from t",
	}

	matches, err := filepath.Glob(filepath.Join("testdata", "*.in.sql"))
	require.NoError(t, err)
	for _, file := range matches {
		content, err := os.ReadFile(file)
		require.NoError(t, err)
		inputs = append(inputs, string(content))
	}

	for _, sql := range inputs {
		out, err := FormatString(Defaults, sql)
		require.NoError(t, err)
		require.Equal(t, string(nonSpace(sql)), string(nonSpace(out)), "input %q", sql)
	}
}

func TestFormatString_pathologicalInput(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"unclosed parentheses", "select " + strings.Repeat("(", 200_000)},
		{"unclosed case", strings.Repeat("case ", 100_000)},
		{"unclosed function calls", "select " + strings.Repeat("f(a, ", 100_000)},
		{"deeply nested parentheses", "select " + strings.Repeat("(", 100_000) + "1" + strings.Repeat(")", 100_000)},
		{"deeply nested case", "select " + strings.Repeat("case when a then ", 20_000) + "1" + strings.Repeat(" end", 20_000)},
		{"case without arms", "select " + strings.Repeat("case ", 50_000) + strings.Repeat("end ", 50_000)},
		{"deeply nested conditions", "select 1 where " + strings.Repeat("(a or ", 50_000) + "b" + strings.Repeat(")", 50_000)},
		{"stray closers", "select " + strings.Repeat(")", 200_000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			out, err := FormatString(Defaults, tt.sql)
			require.NoError(t, err)
			require.Less(t, time.Since(start), 10*time.Second)
			require.Equal(t, len(nonSpace(tt.sql)), len(nonSpace(out)))
		})
	}
}
