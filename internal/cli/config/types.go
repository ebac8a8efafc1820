// Package config provides configuration management for the sqlkit CLI.
//
// Values are layered from lowest to highest priority: built-in defaults,
// the YAML config file, SQLKIT_* environment variables, and command-line
// flags that were explicitly set.
package config

import (
	"log/slog"

	"github.com/leapstack-labs/sqlkit/pkg/parser"
)

// Default values for configuration.
const (
	DefaultDialect  = "ansi"
	DefaultOutput   = "auto"
	DefaultLogLevel = "warn"
	DefaultWorkers  = 4
	DefaultMaxDepth = parser.DefaultMaxDepth
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect  string     `koanf:"dialect"`
	Output   string     `koanf:"output"`
	LogLevel slog.Level `koanf:"log_level"`
	LogFile  string     `koanf:"log_file"`
	Workers  int        `koanf:"workers"`
	MaxDepth int        `koanf:"max_depth"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Dialect:  DefaultDialect,
		Output:   DefaultOutput,
		LogLevel: slog.LevelWarn,
		Workers:  DefaultWorkers,
		MaxDepth: DefaultMaxDepth,
	}
}

// ParserOptions returns the parser options implied by the configuration.
func (c *Config) ParserOptions(logger *slog.Logger) []parser.Option {
	return []parser.Option{
		parser.WithLogger(logger),
		parser.WithMaxDepth(c.MaxDepth),
	}
}
