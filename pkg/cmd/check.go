package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/balajikasiraj07/sqlonline/pkg/format"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

// checkCmd creates a CLI command that reports unterminated quotes and block
// comments and unbalanced parentheses, one per line as
// "<file>:<line>:<column>: <problem>". It fails when any problem is found,
// which makes it usable as a pre-commit hook.
//
// Examples:
//
//	sqlonline check query.sql
//	sqlonline check queries/
//	sqlonline check < query.sql
func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Report structural problems in SQL files",
		ArgsUsage: "[path|-]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := inputPath(cmd)
			if err != nil {
				return err
			}

			var problems int
			if path == stdinPath {
				content, err := io.ReadAll(cmd.Reader)
				if err != nil {
					return errors.Wrap(err, "failed to read standard input")
				}

				if problems, err = report(cmd.Writer, "<stdin>", string(content)); err != nil {
					return err
				}
			} else {
				files, err := sqlFiles(path)
				if err != nil {
					return err
				}

				for _, file := range files {
					content, err := os.ReadFile(file)
					if err != nil {
						return errors.Wrapf(err, "failed to read file: %s", file)
					}

					n, err := report(cmd.Writer, file, string(content))
					if err != nil {
						return err
					}
					problems += n
				}
			}

			if problems > 0 {
				return errors.Errorf("found %d problem(s)", problems)
			}
			return nil
		},
	}
}

// report writes the diagnostics of sql to w and returns how many were found.
func report(w io.Writer, name, sql string) (int, error) {
	diagnostics := format.Diagnose(sql)
	for _, d := range diagnostics {
		if _, err := fmt.Fprintf(w, "%s:%s\n", name, d); err != nil {
			return 0, errors.Wrap(err, "failed to write diagnostics")
		}
	}
	return len(diagnostics), nil
}
