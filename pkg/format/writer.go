package format

import "strings"

// line is one rendered output line before indentation is applied. Extra is
// the number of indent levels beyond the content indent of the enclosing
// parenthesis; keyword lines are placed at clause level instead. A hanging
// keyword line continues on indented lines (WHERE, HAVING), so parentheses
// opened on it are laid out at the clause's content indent.
type line struct {
	text    string
	extra   int
	keyword bool
	hanging bool
}

// lineWriter accumulates rendered lines.
type lineWriter struct {
	lines   []line
	cur     strings.Builder
	extra   int
	keyword bool
	hanging bool
	// broken is set once the current line ends in a line comment, so that
	// the next write starts a new line.
	broken bool
}

func (w *lineWriter) newline(extra int) {
	w.flush()
	w.extra = extra
	w.keyword = false
	w.hanging = false
	w.broken = false
}

// clause starts a keyword line.
func (w *lineWriter) clause(kw Keyword) {
	w.newline(0)
	w.keyword = true
	w.hanging = kw == KeywordWhere || kw == KeywordHaving
	w.cur.WriteString(kw.String())
}

func (w *lineWriter) write(s string, space bool) {
	if w.broken {
		w.newline(w.extra)
	}
	if space && w.cur.Len() > 0 {
		w.cur.WriteByte(' ')
	}
	w.cur.WriteString(s)
}

func (w *lineWriter) token(t token, space bool) {
	w.write(t.text, space)
	if t.comment {
		w.broken = true
	}
}

func (w *lineWriter) flush() {
	if w.cur.Len() == 0 {
		return
	}
	w.lines = append(w.lines, line{text: w.cur.String(), extra: w.extra, keyword: w.keyword, hanging: w.hanging})
	w.cur.Reset()
}

func (w *lineWriter) finish() []line {
	w.flush()
	return w.lines
}
