package format

import "strings"

// Operator is a logical connective in a boolean expression.
type Operator int

const (
	OperatorAnd Operator = iota
	OperatorOr
)

func (o Operator) String() string {
	if o == OperatorOr {
		return "OR"
	}
	return "AND"
}

// ConditionNode is a node of a parsed WHERE or HAVING expression: a *Leaf, a
// *Group or a *Binary.
type ConditionNode interface {
	conditionNode()
}

// Leaf is a single condition such as "age > 18" or "id IN (1, 2)".
type Leaf struct {
	Text   string
	tokens []token
}

// Group is a parenthesized sub-expression. Simple groups contain only leaves
// joined by operators and are rendered on one line.
type Group struct {
	Child  ConditionNode
	Simple bool
}

// Binary joins two conditions with AND or OR. Chains are right-leaning:
// "a AND b AND c" is Binary(AND, a, Binary(AND, b, c)).
type Binary struct {
	Op    Operator
	Left  ConditionNode
	Right ConditionNode
}

func (*Leaf) conditionNode()   {}
func (*Group) conditionNode()  {}
func (*Binary) conditionNode() {}

// ParseConditions parses a boolean expression such as the body of a WHERE
// clause. OR binds looser than AND, so "a OR b AND c" parses as
// Binary(OR, a, Binary(AND, b, c)). A leading AND or OR is ignored.
func ParseConditions(text string) ConditionNode {
	guarded, spans := Guard(text)
	node := parseConditionTokens(stripLogical(tokenize(guarded, spans)))
	restoreLeaves(node, spans)
	return node
}

func restoreLeaves(n ConditionNode, spans []ProtectedSpan) {
	switch n := n.(type) {
	case *Leaf:
		n.Text = strings.TrimSpace(Restore(n.Text, spans))
	case *Group:
		restoreLeaves(n.Child, spans)
	case *Binary:
		restoreLeaves(n.Left, spans)
		restoreLeaves(n.Right, spans)
	}
}

func stripLogical(toks []token) []token {
	for len(toks) > 0 && (toks[0].is(KeywordAnd) || toks[0].is(KeywordOr)) {
		toks = toks[1:]
	}
	return toks
}

type itemKind int

const (
	itemCondition itemKind = iota
	itemOperator
	itemGroup
)

// condItem is a flat unit of a boolean expression. Groups keep their raw
// tokens, parentheses included, alongside their parsed contents.
type condItem struct {
	kind   itemKind
	op     Operator
	tokens []token
	inner  []condItem
}

func parseConditionTokens(toks []token) ConditionNode {
	return buildCondition(conditionItems(toks, 0))
}

// conditionItems splits toks into conditions, operators and logical groups.
// Parentheses that belong to a function call, an IN list or a subquery, or
// that do not contain AND/OR, stay part of the surrounding condition, as does
// a whole CASE expression. The AND of a BETWEEN ... AND ... is never an
// operator.
func conditionItems(toks []token, depth int) []condItem {
	var (
		items   []condItem
		run     []token
		between bool
	)

	flush := func() {
		if len(run) > 0 {
			items = append(items, condItem{kind: itemCondition, tokens: run})
			run = nil
		}
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.is(KeywordCase):
			if end := matchCaseEnd(toks, i); end > 0 {
				run = append(run, toks[i:end+1]...)
				i = end
				continue
			}
		case t.is(KeywordBetween):
			between = true
		case t.is(KeywordAnd) && between:
			between = false
		case t.is(KeywordAnd), t.is(KeywordOr):
			flush()
			between = false
			items = append(items, condItem{kind: itemOperator, op: operatorOf(t), tokens: toks[i : i+1]})
			continue
		case t.kind == tokenOpen:
			end := matchParen(toks, i)
			if end < 0 {
				run = append(run, toks[i:]...)
				i = len(toks)
				continue
			}

			inner := toks[i+1 : end]
			if len(run) == 0 && depth < maxNestingDepth && isLogicalGroup(inner) && atBoundary(toks, end+1) {
				items = append(items, condItem{
					kind:   itemGroup,
					tokens: toks[i : end+1],
					inner:  conditionItems(inner, depth+1),
				})
			} else {
				run = append(run, toks[i:end+1]...)
			}
			i = end
			continue
		}
		run = append(run, t)
	}

	flush()
	return items
}

func operatorOf(t token) Operator {
	if t.is(KeywordOr) {
		return OperatorOr
	}
	return OperatorAnd
}

// isLogicalGroup reports whether the contents of a parenthesis form a boolean
// sub-expression: not a subquery, and joined by AND/OR at the top level.
func isLogicalGroup(inner []token) bool {
	if len(inner) == 0 || startsQuery(inner) {
		return false
	}

	depth := 0
	between := false
	for _, t := range inner {
		switch {
		case t.kind == tokenOpen:
			depth++
		case t.kind == tokenClose:
			depth--
		case depth != 0:
		case t.is(KeywordBetween):
			between = true
		case t.is(KeywordAnd) && between:
			between = false
		case t.is(KeywordAnd), t.is(KeywordOr):
			return true
		}
	}
	return false
}

func atBoundary(toks []token, i int) bool {
	return i >= len(toks) || toks[i].is(KeywordAnd) || toks[i].is(KeywordOr)
}

// buildCondition resolves OR before AND, splitting chains at the leftmost
// operator. A malformed sequence, such as a dangling operator, becomes a
// single leaf so that no text is lost.
func buildCondition(items []condItem) ConditionNode {
	for _, op := range []Operator{OperatorOr, OperatorAnd} {
		parts, ok := splitItems(items, op)
		if !ok {
			return leafOf(items)
		}
		if len(parts) > 1 {
			operands := make([]ConditionNode, len(parts))
			for i, part := range parts {
				operands[i] = buildCondition(part)
			}
			return chain(op, operands)
		}
	}

	if len(items) != 1 {
		return leafOf(items)
	}

	item := items[0]
	switch item.kind {
	case itemGroup:
		return &Group{Child: buildCondition(item.inner), Simple: isSimple(item.inner)}
	default:
		return leafOf(items)
	}
}

// splitItems splits items at every operator op. It reports false if any part
// would be empty.
func splitItems(items []condItem, op Operator) ([][]condItem, bool) {
	var parts [][]condItem
	start := 0
	for i, item := range items {
		if item.kind == itemOperator && item.op == op {
			parts = append(parts, items[start:i])
			start = i + 1
		}
	}
	parts = append(parts, items[start:])

	for _, part := range parts {
		if len(part) == 0 {
			return nil, false
		}
	}
	return parts, true
}

func chain(op Operator, operands []ConditionNode) ConditionNode {
	if len(operands) == 1 {
		return operands[0]
	}
	return &Binary{Op: op, Left: operands[0], Right: chain(op, operands[1:])}
}

func leafOf(items []condItem) *Leaf {
	var toks []token
	for _, item := range items {
		toks = append(toks, item.tokens...)
	}
	return &Leaf{Text: joinTokens(toks), tokens: toks}
}

// isSimple reports whether a group's contents alternate plain conditions and
// operators without any nested group.
func isSimple(items []condItem) bool {
	if len(items)%2 == 0 {
		return false
	}
	for i, item := range items {
		want := itemCondition
		if i%2 == 1 {
			want = itemOperator
		}
		if item.kind != want {
			return false
		}
	}
	return true
}

// spine flattens a chain of the same operator into its operands.
func spine(b *Binary) []ConditionNode {
	var out []ConditionNode
	var n ConditionNode = b
	for {
		next, ok := n.(*Binary)
		if !ok || next.Op != b.Op {
			return append(out, n)
		}
		out = append(out, next.Left)
		n = next.Right
	}
}

// where writes the body of a WHERE or HAVING clause. The first condition
// stays on the keyword line and every following AND/OR starts a new line.
func (r *renderer) where(body []token) {
	body = stripLogical(body)
	if len(body) == 0 {
		return
	}
	r.conditions(parseConditionTokens(body), 0, true)
}

// conditions writes n, breaking the line before each operator of its top
// level chain.
func (r *renderer) conditions(n ConditionNode, extra int, lead bool) {
	b, ok := n.(*Binary)
	if !ok {
		r.operand(n, extra, lead)
		return
	}

	for i, operand := range spine(b) {
		if i == 0 {
			r.operand(operand, extra, lead)
			continue
		}
		r.w.newline(extra)
		r.w.write(b.Op.String(), false)
		r.operand(operand, extra, true)
	}
}

func (r *renderer) operand(n ConditionNode, extra int, lead bool) {
	switch n := n.(type) {
	case *Leaf:
		r.expr(n.tokens, extra, lead)
	case *Group:
		r.group(n, extra, lead)
	case *Binary:
		if isFlat(n) {
			r.inline(n, extra, lead)
			return
		}
		r.conditions(n, extra+1, lead)
	}
}

// group writes a parenthesized condition group. Simple groups stay on one
// line; others put their contents on indented lines and the closing
// parenthesis on its own line.
func (r *renderer) group(g *Group, extra int, lead bool) {
	r.w.write("(", lead)
	if g.Simple {
		r.inline(g.Child, 0, false)
		r.w.write(")", false)
		return
	}

	r.w.newline(1)
	r.conditions(g.Child, 1, false)
	r.w.newline(extra)
	r.w.write(")", false)
}

func (r *renderer) inline(n ConditionNode, extra int, lead bool) {
	switch n := n.(type) {
	case *Leaf:
		r.expr(n.tokens, extra, lead)
	case *Group:
		r.group(n, extra, lead)
	case *Binary:
		r.inline(n.Left, extra, lead)
		r.w.write(n.Op.String(), true)
		r.inline(n.Right, extra, true)
	}
}

// isFlat reports whether every operand of a chain is a leaf or a simple
// group, so the chain fits on one line.
func isFlat(b *Binary) bool {
	for _, n := range spine(b) {
		switch n := n.(type) {
		case *Leaf:
		case *Group:
			if !n.Simple {
				return false
			}
		default:
			return false
		}
	}
	return true
}
