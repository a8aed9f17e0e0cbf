package format

import "strings"

// SplitTopLevel splits text at commas that are not nested inside
// parentheses. Items are trimmed, a trailing empty item is discarded and
// empty input yields an empty slice. Commas inside quoted strings and comments
// never split.
//
//	SplitTopLevel("a, f(b,c), d") // ["a", "f(b,c)", "d"]
func SplitTopLevel(text string) []string {
	guarded, spans := Guard(text)
	items, _ := splitList(tokenize(guarded, spans))

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.TrimSpace(Restore(joinTokens(item), spans)))
	}
	return out
}

// splitList splits toks at depth-0 commas. The trailing flag reports whether
// the list ended with a comma whose (empty) item was discarded.
func splitList(toks []token) (items [][]token, trailing bool) {
	depth := 0
	start := 0

	for i, t := range toks {
		switch t.kind {
		case tokenOpen:
			depth++
		case tokenClose:
			if depth > 0 {
				depth--
			}
		case tokenComma:
			if depth == 0 {
				items = append(items, toks[start:i])
				start = i + 1
			}
		}
	}

	if start < len(toks) {
		items = append(items, toks[start:])
	} else if len(items) > 0 {
		trailing = true
	}

	return items, trailing
}
