package format

// hasWindowClauses reports whether a window specification contains a
// top-level PARTITION BY or ORDER BY.
func hasWindowClauses(inner []token) bool {
	depth := 0
	for _, t := range inner {
		switch {
		case t.kind == tokenOpen:
			depth++
		case t.kind == tokenClose:
			depth--
		case depth == 0 && t.kind == tokenKeyword && isWindowClause(t.keyword):
			return true
		}
	}
	return false
}

// window writes the body of OVER (...) with PARTITION BY and ORDER BY each
// on their own line and their items listed below them.
//
//	OVER (
//		PARTITION BY
//			dept
//		ORDER BY
//			salary DESC
//	)
func (r *renderer) window(inner []token, extra int) {
	r.w.write("(", true)

	for _, seg := range segmentTokens(inner, isWindowClause) {
		if seg.keyword == KeywordNone {
			if len(seg.body) > 0 {
				r.w.newline(1)
				r.expr(seg.body, 1, false)
			}
			continue
		}

		r.w.clause(seg.keyword)
		r.items(seg.body, 0)
	}

	r.w.newline(extra)
	r.w.write(")", false)
}
