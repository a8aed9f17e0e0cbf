package consts

import "os"

const (
	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the project configuration file looked up by the CLI
	ConfigFile = "sqlonline.yaml"

	// DefaultIndent is one level of indentation when none is configured
	DefaultIndent = "\t"

	// DefaultMaxQuerySize is the largest query, in bytes, accepted by default (1 MiB)
	DefaultMaxQuerySize = 1 << 20

	// MinQuerySize and MaxQuerySize bound the configurable query size limit
	MinQuerySize = 1 << 10
	MaxQuerySize = 10 << 20

	// DefaultListenAddr is the address the HTTP server binds to by default
	DefaultListenAddr = ":8080"

	// DefaultMaxBodyBytes caps request bodies read by the HTTP server
	DefaultMaxBodyBytes = 2 << 20

	// DefaultRequestsPerSecond and DefaultBurst configure the per-client rate limiter
	DefaultRequestsPerSecond = 5
	DefaultBurst             = 10
)
