package format

import "strings"

// indentFrame is the indentation state saved when a parenthesis opens.
type indentFrame struct {
	opener  string // indent of the line holding the opening parenthesis
	content string // content indent to restore once the parenthesis closes
}

// reconcile converts rendered lines into indented text. Indentation follows
// parenthesis depth: clause keyword lines sit one unit inside the innermost
// open parenthesis, other lines sit one unit below the last keyword line
// plus their own extra levels, and a line starting with ")" returns to the
// indent of the line that opened it. A parenthesis opened on a hanging
// keyword line behaves as if opened on a continuation line, one unit in.
// Closing parentheses never drive the depth below zero.
func reconcile(lines []line, unit string) string {
	var (
		out     []string
		stack   []indentFrame
		content string
	)

	for _, ln := range lines {
		text := strings.TrimSpace(ln.text)
		if text == "" {
			continue
		}

		var indent string
		rest := text
		closed := false
		for strings.HasPrefix(rest, ")") {
			rest = rest[1:]
			if n := len(stack); n > 0 {
				indent = stack[n-1].opener
				content = stack[n-1].content
				stack = stack[:n-1]
				closed = true
			}
		}

		switch {
		case closed:
		case ln.keyword:
			if n := len(stack); n > 0 {
				indent = stack[n-1].opener + unit
			}
			content = indent + unit
		default:
			indent = content + strings.Repeat(unit, ln.extra)
		}

		out = append(out, indent+text)

		base := indent
		if ln.keyword && ln.hanging {
			base = content
		}

		for _, c := range rest {
			switch c {
			case '(':
				stack = append(stack, indentFrame{opener: base, content: content})
				content = base
			case ')':
				if n := len(stack); n > 0 {
					content = stack[n-1].content
					stack = stack[:n-1]
				}
			}
		}
	}

	return strings.Join(out, "\n")
}
