package cmd

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/balajikasiraj07/sqlonline/pkg/consts"
	"github.com/balajikasiraj07/sqlonline/pkg/format"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// fmtCmd creates a CLI command for formatting SQL, providing gofmt-like
// behavior for files, directory trees and standard input.
//
// The command supports two output modes:
//   - Stdout mode (default): formatted SQL is written to standard output
//   - Write mode (-w flag): files are rewritten in place
//
// Path handling:
//   - File paths: format the file directly
//   - Directory paths: format every .sql file below it; files are formatted
//     concurrently and printed in lexical order
//   - "-" or no path: format standard input (unless it is a terminal)
//
// The formatter never rejects malformed SQL. Unterminated quotes and
// unbalanced parentheses are logged as warnings and the input is formatted
// as well as possible.
//
// Examples:
//
//	sqlonline fmt query.sql
//	sqlonline fmt -w queries/
//	sqlonline fmt --indent "    " < query.sql
func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "[path|-]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
			&cli.StringFlag{
				Name:        "indent",
				Usage:       "One level of indentation (tabs and spaces only)",
				DefaultText: "from config, a tab by default",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := activeConfig().FormatterOptions()
			if cmd.IsSet("indent") {
				opts.IndentUnit = cmd.String("indent")
			}

			if err := format.ValidateIndent(opts.IndentUnit); err != nil {
				return err
			}

			path, err := inputPath(cmd)
			if err != nil {
				return err
			}

			formatter := format.New(opts)
			writeBack := cmd.Bool("write")

			if path == stdinPath {
				if writeBack {
					return errors.New("cannot use -w with standard input")
				}
				return formatReader(formatter, cmd.Reader, cmd.Writer)
			}

			return formatPath(ctx, formatter, path, writeBack, cmd.Writer)
		},
	}
}

// formatReader formats everything read from r and writes the result to w.
func formatReader(formatter *format.Formatter, r io.Reader, w io.Writer) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read standard input")
	}

	warnDiagnostics("<stdin>", string(content))

	out, err := formatSQL(formatter, string(content))
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, "failed to write formatted content to output")
	}
	return nil
}

// formatPath formats a single file or every .sql file below a directory.
func formatPath(ctx context.Context, formatter *format.Formatter, path string, writeBack bool, w io.Writer) error {
	files, err := sqlFiles(path)
	if err != nil {
		return err
	}

	results := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := formatFile(formatter, file, writeBack)
			if err != nil {
				return errors.Wrapf(err, "failed to format file: %s", file)
			}

			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if writeBack {
		return nil
	}

	for _, out := range results {
		if _, err := io.WriteString(w, out); err != nil {
			return errors.Wrap(err, "failed to write formatted content to output")
		}
	}
	return nil
}

// formatFile formats the file at path, rewriting it when writeBack is set and
// the content changed, and returns the formatted text.
func formatFile(formatter *format.Formatter, path string, writeBack bool) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read file: %s", path)
	}

	warnDiagnostics(path, string(content))

	out, err := formatSQL(formatter, string(content))
	if err != nil {
		return "", err
	}

	if writeBack && out != string(content) {
		if err := os.WriteFile(path, []byte(out), consts.ModeFile); err != nil {
			return "", errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}
	}

	return out, nil
}

// formatSQL formats sql and terminates non-empty output with a newline.
func formatSQL(formatter *format.Formatter, sql string) (string, error) {
	out, err := formatter.String(sql)
	if err != nil {
		return "", err
	}

	if out != "" {
		out += "\n"
	}
	return out, nil
}
