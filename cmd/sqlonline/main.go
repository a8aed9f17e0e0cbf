package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/balajikasiraj07/sqlonline/pkg/cmd"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	v := cmd.Version{
		Version:   version,
		Commit:    commit,
		Timestamp: date,
	}

	if err := cmd.Run(context.Background(), v, os.Args); err != nil {
		slog.Error("Error running command", "err", err)
		os.Exit(1)
	}
}
