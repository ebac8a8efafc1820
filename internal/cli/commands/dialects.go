package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlkit/internal/cli/config"
	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
)

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "dialects",
		Aliases: []string{"ls"},
		Short:   "List available dialects",
		Long:    `List every registered dialect. The one selected by --dialect or the config file is marked.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

func runDialects(cmd *cobra.Command) error {
	cfg := config.FromContext(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

	var infos []DialectInfo
	for _, fe := range dialect.All() {
		infos = append(infos, DialectInfo{
			Name:        fe.Name(),
			Description: fe.Description(),
			Selected:    fe.Name() == cfg.Dialect,
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	styles := r.Styles()
	rows := make([]table.Row, 0, len(infos))
	for _, d := range infos {
		name := d.Name
		if d.Selected {
			name = styles.Accent.Render("* " + name)
		}
		rows = append(rows, table.Row{name, d.Description})
	}
	r.Table(table.Row{"Dialect", "Description"}, rows)
	return nil
}
