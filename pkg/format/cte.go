package format

// with writes a WITH clause. A single common table expression stays on the
// WITH line; several are written one per line below it.
func (r *renderer) with(body []token) {
	r.w.clause(KeywordWith)
	if len(body) > 0 && body[0].is(KeywordRecursive) {
		r.w.token(body[0], true)
		body = body[1:]
	}

	if ctes, trailing := splitList(body); len(ctes) > 1 || trailing {
		r.items(body, 0)
		return
	}

	if len(body) > 0 {
		r.expr(body, 0, true)
	}
}
