package format

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// sqlLexer splits SQL text into raw tokens. Rule order is significant: at any
// position the first matching rule wins, which gives quoted literals priority
// over comments and comments priority over operators. The final catch-all
// rule guarantees that lexing never fails, so the concatenated token values
// always reproduce the input exactly.
var sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Placeholder", Pattern: `[\x{E000}-\x{F8FF}][SILC]\d+[\x{E000}-\x{F8FF}]`},
	{Name: "String", Pattern: `'(?:[^'\\]|\\(?s:.))*(?:'|\\?$)`},
	{Name: "QuotedString", Pattern: `"(?:[^"\\]|\\(?s:.))*(?:"|\\?$)`},
	{Name: "Backtick", Pattern: "`(?:[^`\\\\]|\\\\(?s:.))*(?:`|\\\\?$)"},
	{Name: "LineComment", Pattern: `--[^\r\n]*`},
	{Name: "BlockComment", Pattern: `/\*(?s:.*?)(?:\*/|$)`},
	{Name: "Word", Pattern: `[\p{L}\p{N}_$@.:]+`},
	{Name: "Open", Pattern: `\(`},
	{Name: "Close", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Operator", Pattern: `<>|<=|>=|!=|\|\||[=<>+\-*/%!|&^~?;\[\]{}]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `(?s:.)`},
})

var (
	symbols = sqlLexer.Symbols()

	symPlaceholder  = symbols["Placeholder"]
	symString       = symbols["String"]
	symQuotedString = symbols["QuotedString"]
	symBacktick     = symbols["Backtick"]
	symLineComment  = symbols["LineComment"]
	symBlockComment = symbols["BlockComment"]
	symWord         = symbols["Word"]
	symOpen         = symbols["Open"]
	symClose        = symbols["Close"]
	symComma        = symbols["Comma"]
	symOperator     = symbols["Operator"]
	symWhitespace   = symbols["Whitespace"]
	symOther        = symbols["Other"]
)

// lex returns the raw tokens of s without the trailing EOF token.
func lex(s string) []lexer.Token {
	l, err := sqlLexer.LexString("", s)
	if err != nil {
		return []lexer.Token{{Type: symOther, Value: s}}
	}

	toks, err := lexer.ConsumeAll(l)
	if err != nil {
		return []lexer.Token{{Type: symOther, Value: s}}
	}

	if n := len(toks); n > 0 && toks[n-1].EOF() {
		toks = toks[:n-1]
	}

	return toks
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenKeyword
	tokenProtected
	tokenOpen
	tokenClose
	tokenComma
	tokenSymbol
)

// token is a single lexical unit of guarded SQL. Whitespace is not kept as a
// token; instead each token remembers whether whitespace preceded it so that
// text inside a line keeps its original spacing.
type token struct {
	kind    tokenKind
	keyword Keyword
	text    string
	space   bool
	comment bool
	// match is the distance to the token closing this "(" or CASE, or zero
	// when it is never closed. Token slices are always contiguous runs of
	// the stream, so the distance holds in any slice containing both.
	match int
}

func (t token) is(kw Keyword) bool {
	return t.kind == tokenKeyword && t.keyword == kw
}

func (t token) isComparison() bool {
	if t.kind != tokenSymbol {
		return false
	}

	switch t.text {
	case "=", "<", ">", "<=", ">=", "<>", "!=":
		return true
	default:
		return false
	}
}

// tokenize turns guarded text into the token stream shared by every stage.
// Keyword phrases such as "GROUP BY" are merged into a single token.
func tokenize(guarded string, spans []ProtectedSpan) []token {
	comments := make(map[string]bool)
	for _, span := range spans {
		if span.Kind == SpanLineComment {
			comments[span.Placeholder] = true
		}
	}

	raw := lex(guarded)
	toks := make([]token, 0, len(raw)/2+1)
	space := false

	for i := 0; i < len(raw); i++ {
		rt := raw[i]
		t := token{text: rt.Value, space: space}
		space = false

		switch rt.Type {
		case symWhitespace:
			space = true
			continue
		case symWord:
			t.kind = tokenWord
			if kw, last := matchKeyword(raw, i); kw != KeywordNone {
				t.kind = tokenKeyword
				t.keyword = kw
				t.text = kw.String()
				i = last
			}
		case symPlaceholder:
			t.kind = tokenProtected
			t.comment = comments[rt.Value]
		case symString, symQuotedString, symBacktick, symBlockComment:
			t.kind = tokenProtected
		case symLineComment:
			t.kind = tokenProtected
			t.comment = true
		case symOpen:
			t.kind = tokenOpen
		case symClose:
			t.kind = tokenClose
		case symComma:
			t.kind = tokenComma
		default:
			t.kind = tokenSymbol
		}

		toks = append(toks, t)
	}

	linkPairs(toks)
	return toks
}

// linkPairs records the distance from every "(" and CASE to its closer in a
// single pass.
func linkPairs(toks []token) {
	var parens, cases []int
	for i, t := range toks {
		switch {
		case t.kind == tokenOpen:
			parens = append(parens, i)
		case t.kind == tokenClose:
			if n := len(parens); n > 0 {
				toks[parens[n-1]].match = i - parens[n-1]
				parens = parens[:n-1]
			}
		case t.is(KeywordCase):
			cases = append(cases, i)
		case t.is(KeywordEnd):
			if n := len(cases); n > 0 {
				toks[cases[n-1]].match = i - cases[n-1]
				cases = cases[:n-1]
			}
		}
	}
}

// matchKeyword matches the longest keyword phrase starting at raw[i]. Words
// of a phrase must be separated by whitespace only. It returns the keyword and
// the index of the last raw token consumed.
func matchKeyword(raw []lexer.Token, i int) (Keyword, int) {
	candidates := phrases[strings.ToUpper(raw[i].Value)]

next:
	for _, p := range candidates {
		j := i
		for n, word := range p.words {
			if n > 0 {
				if j+2 >= len(raw) || raw[j+1].Type != symWhitespace {
					continue next
				}
				j += 2
			}
			if raw[j].Type != symWord || !strings.EqualFold(raw[j].Value, word) {
				continue next
			}
		}
		return p.keyword, j
	}

	return KeywordNone, i
}

// joinTokens renders tokens on a single line using their original spacing.
func joinTokens(toks []token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 && t.space {
			b.WriteByte(' ')
		}
		b.WriteString(t.text)
	}
	return b.String()
}

// matchParen returns the index of the token closing the parenthesis opened at
// toks[open], or -1 if it is never closed.
func matchParen(toks []token, open int) int {
	return partner(toks, open, tokenClose, KeywordNone)
}

// matchCaseEnd returns the index of the END closing the CASE at toks[start],
// counting nested CASE expressions, or -1 if there is none.
func matchCaseEnd(toks []token, start int) int {
	return partner(toks, start, tokenKeyword, KeywordEnd)
}

func partner(toks []token, i int, kind tokenKind, kw Keyword) int {
	j := i + toks[i].match
	if j == i || j >= len(toks) || toks[j].kind != kind || toks[j].keyword != kw {
		return -1
	}
	return j
}

// startsQuery reports whether toks begin a nested SELECT or WITH statement.
func startsQuery(toks []token) bool {
	return len(toks) > 0 && (toks[0].is(KeywordSelect) || toks[0].is(KeywordWith))
}
