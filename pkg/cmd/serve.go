package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/balajikasiraj07/sqlonline/pkg/server"
	"github.com/urfave/cli/v3"
)

// serveCmd creates a CLI command that runs the HTTP formatting service until
// the process receives SIGINT or SIGTERM.
//
// Examples:
//
//	sqlonline serve
//	sqlonline serve --listen 127.0.0.1:9000
func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the formatter over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "listen",
				Aliases:     []string{"l"},
				Usage:       "The address to listen on",
				DefaultText: "from config, :8080 by default",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := *activeConfig()
			if cmd.IsSet("listen") {
				cfg.Server.Listen = cmd.String("listen")
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(&cfg, slog.Default()).ListenAndServe(ctx)
		},
	}
}
