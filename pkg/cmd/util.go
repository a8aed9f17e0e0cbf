package cmd

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/balajikasiraj07/sqlonline/pkg/format"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// stdinPath selects standard input as the source of SQL.
const stdinPath = "-"

// inputPath returns the single path argument of cmd. Without an argument,
// standard input is used unless it is a terminal.
func inputPath(cmd *cli.Command) (string, error) {
	switch cmd.Args().Len() {
	case 0:
		if isTerminal(cmd.Reader) {
			return "", errors.New("a path argument is required when stdin is a terminal")
		}
		return stdinPath, nil
	case 1:
		return cmd.Args().First(), nil
	default:
		return "", errors.New("at most one path argument is allowed")
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// sqlFiles resolves path into the files to process: the file itself, or every
// .sql file below a directory in lexical order.
func sqlFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to access path: %s", path)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, p)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk directory: %s", path)
	}

	if len(files) == 0 {
		return nil, errors.Errorf("no SQL files found in directory: %s", path)
	}

	return files, nil
}

// warnDiagnostics logs the structural problems of sql as warnings.
func warnDiagnostics(name, sql string) {
	for _, d := range format.Diagnose(sql) {
		slog.Warn("Structural problem in query",
			"file", name,
			"line", d.Line,
			"column", d.Column,
			"problem", d.Message,
		)
	}
}
