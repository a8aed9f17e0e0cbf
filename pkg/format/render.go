package format

const (
	// maxNestingDepth caps recursion through parentheses, subqueries, CASE
	// expressions and condition groups. Deeper input is written flat.
	maxNestingDepth = 128

	// maxCaseBlocks caps the number of CASE expressions laid out per call.
	// Further CASE expressions are written inline.
	maxCaseBlocks = 4096
)

// renderer lays out a token stream as lines. It is created per call and
// never shared.
type renderer struct {
	w     lineWriter
	depth int
	cases int
}

func render(toks []token) []line {
	r := &renderer{}
	r.statement(toks)
	return r.w.finish()
}

func (r *renderer) statement(toks []token) {
	for _, seg := range segmentTokens(toks, Keyword.IsClause) {
		r.clause(seg)
	}
}

func (r *renderer) clause(seg segment) {
	switch seg.keyword {
	case KeywordNone:
		if len(seg.body) > 0 {
			r.w.newline(0)
			r.expr(seg.body, 0, false)
		}
	case KeywordWith:
		r.with(seg.body)
	case KeywordSelect, KeywordGroupBy, KeywordOrderBy, KeywordPartitionBy, KeywordSet, KeywordValues:
		r.list(seg.keyword, seg.body)
	case KeywordWhere, KeywordHaving:
		r.w.clause(seg.keyword)
		r.where(seg.body)
	default:
		r.w.clause(seg.keyword)
		if len(seg.body) > 0 {
			r.expr(seg.body, 0, true)
		}
	}
}

// list writes the keyword on its own line followed by one item per line.
func (r *renderer) list(kw Keyword, body []token) {
	r.w.clause(kw)
	if kw == KeywordSelect {
		for len(body) > 0 && body[0].is(KeywordDistinct) {
			r.w.token(body[0], true)
			body = body[1:]
		}
	}
	r.items(body, 0)
}

// items writes each top-level list item of toks on its own line.
func (r *renderer) items(toks []token, extra int) {
	items, trailing := splitList(toks)
	for i, item := range items {
		r.w.newline(extra)
		r.expr(item, extra, false)
		if i < len(items)-1 || trailing {
			r.w.write(",", false)
		}
	}
}

// expr writes toks on the current line, laying out the structures it
// recognizes (CASE expressions, subqueries, IN lists and window
// specifications) across several lines. The first token is preceded by a
// space only if lead is set.
func (r *renderer) expr(toks []token, extra int, lead bool) {
	if r.depth >= maxNestingDepth {
		r.flat(toks, lead)
		return
	}

	r.depth++
	defer func() { r.depth-- }()

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		space := t.space
		if i == 0 {
			space = lead
		}

		if t.is(KeywordCase) {
			if end := matchCaseEnd(toks, i); end > 0 {
				r.caseBlock(toks[i:end+1], extra, space)
				i = end
				continue
			}
		}

		if t.kind == tokenOpen {
			if end := matchParen(toks, i); end > 0 {
				var prev token
				if i > 0 {
					prev = toks[i-1]
				}
				r.paren(prev, toks[i+1:end], toks[end], extra, space)
				i = end
				continue
			}
		}

		r.w.token(t, space)
	}
}

func (r *renderer) flat(toks []token, lead bool) {
	for i, t := range toks {
		space := t.space
		if i == 0 {
			space = lead
		}
		r.w.token(t, space)
	}
}

// paren writes a balanced parenthesized group. prev is the token before the
// opening parenthesis, if any.
func (r *renderer) paren(prev token, inner []token, closing token, extra int, space bool) {
	switch {
	case startsQuery(inner):
		r.subquery(inner, extra, space)
	case prev.is(KeywordIn):
		r.inList(inner, extra)
	case prev.is(KeywordOver) && hasWindowClauses(inner):
		r.window(inner, extra)
	default:
		r.w.write("(", space)
		if len(inner) > 0 {
			r.expr(inner, 0, inner[0].space)
		}
		r.w.write(")", closing.space)
	}
}

func (r *renderer) subquery(inner []token, extra int, space bool) {
	r.w.write("(", space)
	r.statement(inner)
	r.w.newline(extra)
	r.w.write(")", false)
}

// inList writes the values of an IN list one per line. Lists with fewer than
// two values stay inline.
func (r *renderer) inList(inner []token, extra int) {
	r.w.write("(", true)

	items, trailing := splitList(inner)
	if len(items) < 2 && !trailing {
		r.expr(inner, 0, false)
		r.w.write(")", false)
		return
	}

	r.items(inner, 1)
	r.w.newline(extra)
	r.w.write(")", false)
}
