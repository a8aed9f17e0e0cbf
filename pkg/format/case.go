package format

// caseExpr is a parsed CASE ... END expression. A simple CASE has a subject
// ("CASE x WHEN 1 THEN ..."); a searched CASE does not.
type caseExpr struct {
	subject   []token
	arms      []caseArm
	otherwise *caseResult
}

type caseArm struct {
	condition []token
	result    caseResult
}

// caseResult is the value of a THEN or ELSE branch. When the whole branch is
// itself a CASE expression it is parsed eagerly into nested.
type caseResult struct {
	tokens []token
	nested *caseExpr
}

// parseCase parses toks, which run from CASE to its matching END. It returns
// nil when the expression does not have a recognizable shape, in which case
// the caller writes it unchanged.
func parseCase(toks []token, depth int) *caseExpr {
	if len(toks) < 2 || depth >= maxNestingDepth {
		return nil
	}

	parts := segmentTokens(toks[1:len(toks)-1], isCaseClause)
	c := &caseExpr{subject: parts[0].body}
	if hasComparison(c.subject) {
		return nil
	}

	rest := parts[1:]
	for len(rest) >= 2 && rest[0].keyword == KeywordWhen && rest[1].keyword == KeywordThen {
		if len(rest[0].body) == 0 || len(rest[1].body) == 0 {
			return nil
		}
		c.arms = append(c.arms, caseArm{
			condition: rest[0].body,
			result:    parseCaseResult(rest[1].body, depth),
		})
		rest = rest[2:]
	}

	if len(rest) == 1 && rest[0].keyword == KeywordElse && len(rest[0].body) > 0 {
		res := parseCaseResult(rest[0].body, depth)
		c.otherwise = &res
		rest = nil
	}

	if len(c.arms) == 0 || len(rest) > 0 {
		return nil
	}

	return c
}

func parseCaseResult(toks []token, depth int) caseResult {
	res := caseResult{tokens: toks}
	if toks[0].is(KeywordCase) && matchCaseEnd(toks, 0) == len(toks)-1 {
		res.nested = parseCase(toks, depth+1)
	}
	return res
}

// hasComparison reports whether toks contain a comparison operator outside
// of parentheses. A CASE subject must be a bare expression.
func hasComparison(toks []token) bool {
	depth := 0
	for _, t := range toks {
		switch {
		case t.kind == tokenOpen:
			depth++
		case t.kind == tokenClose:
			depth--
		case depth == 0 && t.isComparison():
			return true
		}
	}
	return false
}

// caseBlock lays out the CASE expression in toks. An expression that cannot
// be parsed, or any CASE beyond the budget, is written unchanged on the
// current line.
func (r *renderer) caseBlock(toks []token, extra int, space bool) {
	var c *caseExpr
	if r.cases < maxCaseBlocks {
		c = parseCase(toks, r.depth)
	}

	if c == nil {
		r.flat(toks, space)
		return
	}

	r.renderCase(c, extra, space)
}

// renderCase writes CASE on the current line, each arm one level deeper than
// extra and END back at extra:
//
//	CASE
//		WHEN a = 1 THEN 'one'
//		ELSE 'other'
//	END
func (r *renderer) renderCase(c *caseExpr, extra int, space bool) {
	r.cases++

	r.w.write(KeywordCase.String(), space)
	if len(c.subject) > 0 {
		r.expr(c.subject, extra, true)
	}

	for _, arm := range c.arms {
		r.w.newline(extra + 1)
		r.w.write(KeywordWhen.String(), false)
		r.expr(arm.condition, extra+1, true)
		r.w.write(KeywordThen.String(), true)
		r.caseResult(arm.result, extra+1)
	}

	if c.otherwise != nil {
		r.w.newline(extra + 1)
		r.w.write(KeywordElse.String(), false)
		r.caseResult(*c.otherwise, extra+1)
	}

	r.w.newline(extra)
	r.w.write(KeywordEnd.String(), false)
}

func (r *renderer) caseResult(res caseResult, extra int) {
	if res.nested != nil && r.cases < maxCaseBlocks {
		r.depth++
		r.renderCase(res.nested, extra, true)
		r.depth--
		return
	}
	r.expr(res.tokens, extra, true)
}
