package format

import (
	"sort"
	"strings"
)

// Keyword identifies a recognized SQL keyword or keyword phrase. Recognized
// keywords are always rendered in uppercase.
type Keyword int

const (
	KeywordNone Keyword = iota

	// Clause keywords start a new clause segment.
	KeywordSelect
	KeywordFrom
	KeywordWhere
	KeywordGroupBy
	KeywordHaving
	KeywordOrderBy
	KeywordLimit
	KeywordOffset
	KeywordJoin
	KeywordInnerJoin
	KeywordLeftJoin
	KeywordRightJoin
	KeywordFullJoin
	KeywordCrossJoin
	KeywordOuterJoin
	KeywordLeftOuterJoin
	KeywordRightOuterJoin
	KeywordFullOuterJoin
	KeywordUnion
	KeywordUnionAll
	KeywordIntersect
	KeywordExcept
	KeywordWith
	KeywordPartitionBy
	KeywordInsertInto
	KeywordValues
	KeywordUpdate
	KeywordSet
	KeywordDelete

	// Expression keywords.
	KeywordOver
	KeywordAnd
	KeywordOr
	KeywordNot
	KeywordIn
	KeywordIs
	KeywordNull
	KeywordLike
	KeywordBetween
	KeywordExists
	KeywordCase
	KeywordWhen
	KeywordThen
	KeywordElse
	KeywordEnd
	KeywordAs
	KeywordOn
	KeywordUsing
	KeywordDistinct
	KeywordAsc
	KeywordDesc
	KeywordRecursive
)

var keywordText = map[Keyword]string{
	KeywordSelect:         "SELECT",
	KeywordFrom:           "FROM",
	KeywordWhere:          "WHERE",
	KeywordGroupBy:        "GROUP BY",
	KeywordHaving:         "HAVING",
	KeywordOrderBy:        "ORDER BY",
	KeywordLimit:          "LIMIT",
	KeywordOffset:         "OFFSET",
	KeywordJoin:           "JOIN",
	KeywordInnerJoin:      "INNER JOIN",
	KeywordLeftJoin:       "LEFT JOIN",
	KeywordRightJoin:      "RIGHT JOIN",
	KeywordFullJoin:       "FULL JOIN",
	KeywordCrossJoin:      "CROSS JOIN",
	KeywordOuterJoin:      "OUTER JOIN",
	KeywordLeftOuterJoin:  "LEFT OUTER JOIN",
	KeywordRightOuterJoin: "RIGHT OUTER JOIN",
	KeywordFullOuterJoin:  "FULL OUTER JOIN",
	KeywordUnion:          "UNION",
	KeywordUnionAll:       "UNION ALL",
	KeywordIntersect:      "INTERSECT",
	KeywordExcept:         "EXCEPT",
	KeywordWith:           "WITH",
	KeywordPartitionBy:    "PARTITION BY",
	KeywordInsertInto:     "INSERT INTO",
	KeywordValues:         "VALUES",
	KeywordUpdate:         "UPDATE",
	KeywordSet:            "SET",
	KeywordDelete:         "DELETE",
	KeywordOver:           "OVER",
	KeywordAnd:            "AND",
	KeywordOr:             "OR",
	KeywordNot:            "NOT",
	KeywordIn:             "IN",
	KeywordIs:             "IS",
	KeywordNull:           "NULL",
	KeywordLike:           "LIKE",
	KeywordBetween:        "BETWEEN",
	KeywordExists:         "EXISTS",
	KeywordCase:           "CASE",
	KeywordWhen:           "WHEN",
	KeywordThen:           "THEN",
	KeywordElse:           "ELSE",
	KeywordEnd:            "END",
	KeywordAs:             "AS",
	KeywordOn:             "ON",
	KeywordUsing:          "USING",
	KeywordDistinct:       "DISTINCT",
	KeywordAsc:            "ASC",
	KeywordDesc:           "DESC",
	KeywordRecursive:      "RECURSIVE",
}

// String returns the canonical uppercase spelling of the keyword.
func (k Keyword) String() string {
	return keywordText[k]
}

// IsClause reports whether the keyword starts a clause segment.
func (k Keyword) IsClause() bool {
	return k >= KeywordSelect && k <= KeywordDelete
}

type phrase struct {
	keyword Keyword
	words   []string
}

// phrases maps the first word of every keyword to its candidate phrases,
// longest first, so "UNION ALL" wins over "UNION".
var phrases = buildPhrases()

func buildPhrases() map[string][]phrase {
	out := make(map[string][]phrase)
	for kw, text := range keywordText {
		words := strings.Fields(text)
		out[words[0]] = append(out[words[0]], phrase{keyword: kw, words: words})
	}

	for _, list := range out {
		sort.Slice(list, func(i, j int) bool {
			if len(list[i].words) != len(list[j].words) {
				return len(list[i].words) > len(list[j].words)
			}
			return list[i].keyword < list[j].keyword
		})
	}

	return out
}
