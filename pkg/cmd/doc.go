// Package cmd provides the CLI commands for sqlonline.
//
// # Available Commands
//
//   - fmt: format a file, a directory tree of .sql files or standard input
//   - check: report unterminated quotes, unterminated block comments and
//     unbalanced parentheses
//   - serve: run the HTTP formatting service
//
// Each command is implemented as a function returning a *cli.Command,
// following the urfave/cli/v3 pattern, and writes its output to the
// command's Writer so it can be captured in tests.
//
// # Global Options
//
//   - --config, -c: the configuration file (env SQLONLINE_CONFIG)
//   - --help, -h: display command help
//   - --version: display version information
//
// # Example Usage
//
//	sqlonline fmt query.sql              # Print the formatted query
//	sqlonline fmt -w queries/            # Format every .sql file in place
//	cat query.sql | sqlonline fmt        # Format standard input
//	sqlonline fmt --indent "  " -        # Two-space indentation
//	sqlonline check queries/             # Exit non-zero on structural problems
//	sqlonline serve --listen :9000       # Serve POST /format and POST /validate
package cmd
