package format

import (
	"fmt"
	"sort"
	"strings"
)

// DiagnosticKind classifies a structural problem in a query.
type DiagnosticKind string

const (
	DiagnosticUnclosedQuote   DiagnosticKind = "unclosed-quote"
	DiagnosticUnclosedComment DiagnosticKind = "unclosed-comment"
	DiagnosticUnclosedParen   DiagnosticKind = "unclosed-paren"
	DiagnosticUnmatchedParen  DiagnosticKind = "unmatched-paren"
)

// Diagnostic describes a structural problem found by Diagnose. Line and
// Column are 1-based.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
	Line    int            `json:"line"`
	Column  int            `json:"column"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

var quoteNames = map[byte]string{
	'\'': "single quote",
	'"':  "double quote",
	'`':  "backtick",
}

// Diagnose reports unterminated quotes and block comments, parentheses that
// are never closed and closing parentheses without an opener. It never fails:
// the formatter accepts all of these, Diagnose only points them out.
func Diagnose(sql string) []Diagnostic {
	var (
		out   []Diagnostic
		opens []Diagnostic
	)

	for _, t := range lex(sql) {
		pos := t.Pos
		switch t.Type {
		case symString, symQuotedString, symBacktick:
			q := t.Value[0]
			if !closedQuote(t.Value, q) {
				out = append(out, Diagnostic{
					Kind:    DiagnosticUnclosedQuote,
					Message: fmt.Sprintf("unclosed %s", quoteNames[q]),
					Line:    pos.Line,
					Column:  pos.Column,
				})
			}
		case symBlockComment:
			if len(t.Value) < 4 || !strings.HasSuffix(t.Value, "*/") {
				out = append(out, Diagnostic{
					Kind:    DiagnosticUnclosedComment,
					Message: "unclosed block comment",
					Line:    pos.Line,
					Column:  pos.Column,
				})
			}
		case symOpen:
			opens = append(opens, Diagnostic{
				Kind:    DiagnosticUnclosedParen,
				Message: "unclosed parenthesis",
				Line:    pos.Line,
				Column:  pos.Column,
			})
		case symClose:
			if n := len(opens); n > 0 {
				opens = opens[:n-1]
				continue
			}
			out = append(out, Diagnostic{
				Kind:    DiagnosticUnmatchedParen,
				Message: "closing parenthesis without matching opening parenthesis",
				Line:    pos.Line,
				Column:  pos.Column,
			})
		}
	}

	out = append(out, opens...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})

	return out
}

// closedQuote reports whether the quoted literal v ends with an unescaped
// closing quote q.
func closedQuote(v string, q byte) bool {
	for i := 1; i < len(v); i++ {
		switch v[i] {
		case '\\':
			i++
		case q:
			return i == len(v)-1
		}
	}
	return false
}
