// Package format pretty-prints SQL statements.
//
// The formatter accepts arbitrary, possibly malformed SQL text and produces a
// canonically indented, multi-line rendering. It never rejects input for
// being invalid SQL: anything it does not recognize is passed through as-is.
//
// Key features:
//   - Uppercase keywords and one clause keyword per line
//   - One SELECT field, GROUP BY item and ORDER BY item per line
//   - WHERE/HAVING boolean expressions broken at AND/OR with correct precedence
//   - Multi-line CASE expressions with nested CASE indented one level deeper
//   - Window functions (OVER with PARTITION BY/ORDER BY) and common table expressions
//   - Recursively formatted subqueries
//   - String literals, quoted identifiers and comments are never modified
//
// Usage:
//
//	// Object-oriented API with default options
//	formatter := format.New(format.Defaults)
//	out, err := formatter.String("select id,name from users where age>18")
//
//	// Object-oriented API with custom options
//	formatter := format.New(format.FormatterOptions{
//		IndentUnit:   "    ",
//		MaxQuerySize: 64 << 10,
//	})
//
//	var buf bytes.Buffer
//	err := formatter.Format(&buf, sql)
//
//	// Functional API
//	err := format.Format(&buf, format.Defaults, sql)
//	out, err := format.FormatString(format.Defaults, sql)
//
// Formatting runs as a fixed pipeline: literals and comments are replaced by
// placeholders, the remaining text is tokenized once, clauses and expressions
// are rendered into lines carrying relative indentation, a reconciler turns
// those into absolute indentation by tracking parenthesis depth, and finally
// the placeholders are restored.
package format
