package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
)

// OutputModes lists the accepted values of the output setting.
var OutputModes = []string{"auto", "text", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dialect == "" {
		return fmt.Errorf("dialect is required")
	}
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return fmt.Errorf("invalid dialect in config: %w\nHint: set 'dialect' in sqlkit.yaml or pass --dialect", err)
	}

	if !slices.Contains(OutputModes, c.Output) {
		return fmt.Errorf("invalid output mode %q (available: %s)", c.Output, strings.Join(OutputModes, ", "))
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}
