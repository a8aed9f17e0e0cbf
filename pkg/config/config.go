package config

import (
	"io"
	"os"

	"github.com/balajikasiraj07/sqlonline/pkg/consts"
	"github.com/balajikasiraj07/sqlonline/pkg/format"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// Format holds the formatting settings shared by the CLI and the server.
	Format struct {
		// Indent is one level of indentation; only tabs and spaces are allowed
		Indent string `yaml:"indent,omitempty"`

		// MaxQuerySize is the largest query accepted, in bytes
		MaxQuerySize int `yaml:"max_query_size,omitempty"`
	}

	// RateLimit configures the per-client request limiter of the server.
	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"`
		Burst             int     `yaml:"burst,omitempty"`
	}

	// Server holds the HTTP server settings.
	Server struct {
		// Listen is the address the server binds to
		Listen string `yaml:"listen,omitempty"`

		// MaxBodyBytes caps the size of a request body
		MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`

		RateLimit RateLimit `yaml:"rate_limit"`

		// AllowedOrigins lists the origins permitted by CORS
		AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	}

	// Config represents the sqlonline.yaml project configuration.
	Config struct {
		Format Format `yaml:"format"`
		Server Server `yaml:"server"`
	}
)

// Default returns a configuration with every setting at its default value.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data. Settings that are
// missing or empty take their default values, and the result is validated.
//
// Example:
//
//	yamlData := `
//	format:
//	  indent: "  "
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	out, err := format.FormatString(cfg.FormatterOptions(), sql)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Validate rejects indent units containing anything but tabs and spaces,
// query size limits outside of consts.MinQuerySize..consts.MaxQuerySize and
// non-positive server limits.
func (c *Config) Validate() error {
	if err := format.ValidateIndent(c.Format.Indent); err != nil {
		return errors.Wrap(err, "invalid format.indent")
	}

	if c.Format.MaxQuerySize < consts.MinQuerySize || c.Format.MaxQuerySize > consts.MaxQuerySize {
		return errors.Errorf(
			"invalid format.max_query_size: %d is not between %d and %d bytes",
			c.Format.MaxQuerySize, consts.MinQuerySize, consts.MaxQuerySize,
		)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return errors.Errorf("invalid server.max_body_bytes: %d", c.Server.MaxBodyBytes)
	}

	if c.Server.RateLimit.RequestsPerSecond <= 0 || c.Server.RateLimit.Burst <= 0 {
		return errors.New("invalid server.rate_limit: requests_per_second and burst must be positive")
	}

	return nil
}

// FormatterOptions converts the format settings into engine options.
func (c *Config) FormatterOptions() format.FormatterOptions {
	return format.FormatterOptions{
		IndentUnit:   c.Format.Indent,
		MaxQuerySize: c.Format.MaxQuerySize,
	}
}

func (c *Config) applyDefaults() {
	if c.Format.Indent == "" {
		c.Format.Indent = consts.DefaultIndent
	}
	if c.Format.MaxQuerySize == 0 {
		c.Format.MaxQuerySize = consts.DefaultMaxQuerySize
	}
	if c.Server.Listen == "" {
		c.Server.Listen = consts.DefaultListenAddr
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = consts.DefaultMaxBodyBytes
	}
	if c.Server.RateLimit.RequestsPerSecond == 0 {
		c.Server.RateLimit.RequestsPerSecond = consts.DefaultRequestsPerSecond
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = consts.DefaultBurst
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
}
