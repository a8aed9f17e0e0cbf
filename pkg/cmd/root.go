package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/balajikasiraj07/sqlonline/pkg/config"
	"github.com/balajikasiraj07/sqlonline/pkg/consts"
	"github.com/urfave/cli/v3"
)

// currentConfig is loaded by the root command before any subcommand runs.
var currentConfig *config.Config

// Version identifies the build being run.
type Version struct {
	Version   string
	Commit    string
	Timestamp string
}

// Run creates and executes the sqlonline CLI application with the given
// version and command-line arguments.
//
// Global Flags:
//   - --config, -c: the configuration file (env SQLONLINE_CONFIG, defaults to
//     sqlonline.yaml in the current directory)
//
// A missing default configuration file is not an error; every setting then
// takes its default value. A file named explicitly must exist.
//
// Example usage:
//
//	err := Run(ctx, Version{Version: "v1.0.0"}, []string{"sqlonline", "fmt", "query.sql"})
//	err := Run(ctx, v, []string{"sqlonline", "-c", "prod.yaml", "serve"})
func Run(ctx context.Context, v Version, args []string) error {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", v.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", v.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", v.Timestamp)
	}

	app := &cli.Command{
		Name:  "sqlonline",
		Usage: "A SQL pretty-printer",
		Description: `sqlonline rewrites SQL queries into a canonical, indented layout with
uppercase keywords, one field per line and structured WHERE, CASE, window
and CTE rendering. It formats files, directory trees and standard input, and
can serve the formatter over HTTP.`,
		Version: v.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the sqlonline config file",
				Sources: cli.EnvVars("SQLONLINE_CONFIG"),
				Value:   consts.ConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := loadConfig(cmd.String("config"), cmd.IsSet("config"))
			if err != nil {
				return ctx, err
			}

			currentConfig = cfg
			return ctx, nil
		},
		Commands: []*cli.Command{
			fmtCmd(),
			checkCmd(),
			serveCmd(),
		},
	}

	return app.Run(ctx, args)
}

// loadConfig reads the configuration at path. When the path was not given
// explicitly and the file does not exist, the defaults are returned.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return config.Default(), nil
	}

	return config.LoadConfigFile(path)
}

// activeConfig returns the loaded configuration, or the defaults when a
// command runs outside of Run.
func activeConfig() *config.Config {
	if currentConfig == nil {
		return config.Default()
	}
	return currentConfig
}
