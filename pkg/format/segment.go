package format

import "strings"

// ClauseSegment is one clause of a statement: a clause keyword and the text
// that follows it up to the next clause keyword. The first segment of a
// statement never has a keyword.
type ClauseSegment struct {
	Keyword Keyword
	Body    string
}

// Segment splits sql into clause segments at clause keywords that are not
// nested inside parentheses or CASE expressions.
func Segment(sql string) []ClauseSegment {
	guarded, spans := Guard(sql)
	segs := segmentTokens(tokenize(guarded, spans), Keyword.IsClause)

	out := make([]ClauseSegment, 0, len(segs))
	for _, seg := range segs {
		out = append(out, ClauseSegment{
			Keyword: seg.keyword,
			Body:    strings.TrimSpace(Restore(joinTokens(seg.body), spans)),
		})
	}
	return out
}

type segment struct {
	keyword Keyword
	body    []token
}

// segmentTokens splits toks at every keyword accepted by split that sits at
// parenthesis depth 0 and outside any CASE expression. Bodies are subslices
// of toks.
func segmentTokens(toks []token, split func(Keyword) bool) []segment {
	segs := []segment{{}}
	depth, cases, start := 0, 0, 0

	for i, t := range toks {
		switch {
		case t.kind == tokenOpen:
			depth++
		case t.kind == tokenClose:
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case t.is(KeywordCase):
			cases++
		case t.is(KeywordEnd):
			if cases > 0 {
				cases--
			}
		case cases == 0 && t.kind == tokenKeyword && split(t.keyword):
			segs[len(segs)-1].body = toks[start:i]
			segs = append(segs, segment{keyword: t.keyword})
			start = i + 1
		}
	}

	segs[len(segs)-1].body = toks[start:]
	return segs
}

func isWindowClause(kw Keyword) bool {
	return kw == KeywordPartitionBy || kw == KeywordOrderBy
}

func isCaseClause(kw Keyword) bool {
	return kw == KeywordWhen || kw == KeywordThen || kw == KeywordElse
}
