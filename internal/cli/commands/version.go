package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display sqlkit version and the dialects compiled into this binary.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sqlkit v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Extensible SQL expression parser (%d dialects)\n", len(dialect.List()))
		},
	}
}
