package format_test

import (
	"testing"

	. "github.com/balajikasiraj07/sqlonline/pkg/format"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	segs := Segment("select a, b from t where x = (select 1 from u) order by a limit 5")

	require.Equal(t, []ClauseSegment{
		{Keyword: KeywordNone, Body: ""},
		{Keyword: KeywordSelect, Body: "a, b"},
		{Keyword: KeywordFrom, Body: "t"},
		{Keyword: KeywordWhere, Body: "x = (SELECT 1 FROM u)"},
		{Keyword: KeywordOrderBy, Body: "a"},
		{Keyword: KeywordLimit, Body: "5"},
	}, segs)
}

func TestSegment_ignoresNestedKeywords(t *testing.T) {
	segs := Segment("select case when a then 'from' end, extract(year from d) from t")

	require.Len(t, segs, 3)
	require.Equal(t, KeywordSelect, segs[1].Keyword)
	require.Equal(t, "CASE WHEN a THEN 'from' END, extract(year FROM d)", segs[1].Body)
	require.Equal(t, KeywordFrom, segs[2].Keyword)
	require.Equal(t, "t", segs[2].Body)
}

func TestSegment_leadingText(t *testing.T) {
	segs := Segment("explain select 1")

	require.Equal(t, ClauseSegment{Keyword: KeywordNone, Body: "explain"}, segs[0])
	require.Equal(t, ClauseSegment{Keyword: KeywordSelect, Body: "1"}, segs[1])
}

func TestKeyword(t *testing.T) {
	require.Equal(t, "GROUP BY", KeywordGroupBy.String())
	require.Equal(t, "UNION ALL", KeywordUnionAll.String())
	require.Empty(t, KeywordNone.String())

	require.True(t, KeywordSelect.IsClause())
	require.True(t, KeywordDelete.IsClause())
	require.False(t, KeywordOver.IsClause())
	require.False(t, KeywordAnd.IsClause())
	require.False(t, KeywordNone.IsClause())
}
