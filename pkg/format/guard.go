package format

import (
	"strconv"
	"strings"
)

// SpanKind classifies a protected region of the input.
type SpanKind int

const (
	SpanString SpanKind = iota
	SpanIdentifier
	SpanLineComment
	SpanBlockComment
)

func (k SpanKind) String() string {
	switch k {
	case SpanString:
		return "string"
	case SpanIdentifier:
		return "identifier"
	case SpanLineComment:
		return "line comment"
	case SpanBlockComment:
		return "block comment"
	default:
		return "unknown"
	}
}

func (k SpanKind) letter() string {
	return [...]string{"S", "I", "L", "C"}[k]
}

// ProtectedSpan records a literal or comment that was replaced by a
// placeholder so that no later stage can alter it.
type ProtectedSpan struct {
	Placeholder string
	Original    string
	Kind        SpanKind
}

var spanKinds = map[int]SpanKind{
	int(symString):       SpanString,
	int(symQuotedString): SpanString,
	int(symBacktick):     SpanIdentifier,
	int(symLineComment):  SpanLineComment,
	int(symBlockComment): SpanBlockComment,
}

// Guard replaces every quoted string, quoted identifier and comment in sql
// with a placeholder and returns the guarded text along with the spans needed
// to restore it. Unterminated literals and comments extend to the end of the
// input.
//
// Placeholders are built around a private-use rune that does not occur in
// sql, so they can never collide with user text. If every candidate rune is
// present the input is returned unchanged.
func Guard(sql string) (string, []ProtectedSpan) {
	marker, ok := pickMarker(sql)
	if !ok {
		return sql, nil
	}

	var (
		b     strings.Builder
		spans []ProtectedSpan
	)
	b.Grow(len(sql))

	for _, t := range lex(sql) {
		kind, protected := spanKinds[int(t.Type)]
		if !protected {
			b.WriteString(t.Value)
			continue
		}

		placeholder := marker + kind.letter() + strconv.Itoa(len(spans)) + marker
		spans = append(spans, ProtectedSpan{
			Placeholder: placeholder,
			Original:    t.Value,
			Kind:        kind,
		})
		b.WriteString(placeholder)
	}

	return b.String(), spans
}

// Restore substitutes the original text back for every placeholder in text.
func Restore(text string, spans []ProtectedSpan) string {
	if len(spans) == 0 {
		return text
	}

	pairs := make([]string, 0, len(spans)*2)
	for _, span := range spans {
		pairs = append(pairs, span.Placeholder, span.Original)
	}

	return strings.NewReplacer(pairs...).Replace(text)
}

// pickMarker returns the first private-use rune that does not occur in sql.
func pickMarker(sql string) (string, bool) {
	const first, last = 0xE000, 0xF8FF

	var used [last - first + 1]bool
	for _, r := range sql {
		if r >= first && r <= last {
			used[r-first] = true
		}
	}

	for i, taken := range used {
		if !taken {
			return string(rune(first + i)), true
		}
	}
	return "", false
}
