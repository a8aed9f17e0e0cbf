package format

import (
	"io"
	"strings"

	"github.com/balajikasiraj07/sqlonline/pkg/consts"
	"github.com/pkg/errors"
)

type (
	// FormatterOptions controls formatting behavior
	FormatterOptions struct {
		// IndentUnit is one level of indentation. Only tabs and spaces are
		// allowed; empty means a single tab.
		IndentUnit string
		// MaxQuerySize is the largest accepted input in bytes; zero means
		// consts.DefaultMaxQuerySize.
		MaxQuerySize int
	}

	// Formatter formats SQL statements. It holds only immutable options and
	// is safe for concurrent use.
	Formatter struct {
		options FormatterOptions
	}
)

// Defaults are the standard formatting options: tab indentation and a 1 MiB
// size limit.
var Defaults = FormatterOptions{
	IndentUnit:   consts.DefaultIndent,
	MaxQuerySize: consts.DefaultMaxQuerySize,
}

// New creates a new Formatter with the specified options
func New(options FormatterOptions) *Formatter {
	if options.IndentUnit == "" {
		options.IndentUnit = Defaults.IndentUnit
	}
	if options.MaxQuerySize <= 0 {
		options.MaxQuerySize = Defaults.MaxQuerySize
	}
	return &Formatter{options: options}
}

// Format writes the formatted form of sql to w.
func (f *Formatter) Format(w io.Writer, sql string) error {
	out, err := f.String(sql)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, "failed to write formatted SQL")
	}
	return nil
}

// String returns the formatted form of sql. Empty or whitespace-only input
// yields an empty string. The only errors are ErrInvalidIndentUnit and
// ErrInputTooLarge, both detected before any formatting work.
func (f *Formatter) String(sql string) (string, error) {
	if err := ValidateIndent(f.options.IndentUnit); err != nil {
		return "", err
	}

	if len(sql) > f.options.MaxQuerySize {
		return "", &SizeLimitError{Size: len(sql), Limit: f.options.MaxQuerySize}
	}

	if strings.TrimSpace(sql) == "" {
		return "", nil
	}

	guarded, spans := Guard(sql)
	lines := render(tokenize(guarded, spans))
	out := reconcile(lines, f.options.IndentUnit)

	return Restore(strings.TrimSpace(out), spans), nil
}

// Format writes sql formatted with options to w (convenience function)
func Format(w io.Writer, options FormatterOptions, sql string) error {
	return New(options).Format(w, sql)
}

// FormatString returns sql formatted with options (convenience function)
func FormatString(options FormatterOptions, sql string) (string, error) {
	return New(options).String(sql)
}

// ValidateIndent checks that unit consists of tabs and spaces only.
func ValidateIndent(unit string) error {
	if strings.Trim(unit, " \t") != "" {
		return errors.Wrapf(ErrInvalidIndentUnit, "indent %q", unit)
	}
	return nil
}
