// Package commands implements the sqlkit subcommands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlkit/internal/cli/config"
	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/parser"
)

// CommandContext holds common dependencies for command execution.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Frontend dialect.Frontend
}

// NewCommandContext resolves the configured dialect and builds a renderer
// for the command's output streams.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	fe, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
		Frontend: fe,
	}, nil
}

// ParserOptions returns the parser options for the configured limits.
func (c *CommandContext) ParserOptions() []parser.Option {
	return c.Cfg.ParserOptions(c.Logger)
}
