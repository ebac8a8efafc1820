// Package cli provides the command-line interface for sqlkit.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlkit/internal/cli/commands"
	"github.com/leapstack-labs/sqlkit/internal/cli/config"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"

	// Built-in dialects register themselves via init()
	_ "github.com/leapstack-labs/sqlkit/pkg/dialects/acme"
	_ "github.com/leapstack-labs/sqlkit/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlkit/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/sqlkit/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/sqlkit/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/sqlkit/pkg/dialects/snowflake"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// rootCommand pairs the root command with the log file it opened, if any.
// cobra skips post-run hooks when a command fails, so the file is closed by
// execute rather than by the command itself.
type rootCommand struct {
	cmd      *cobra.Command
	closeLog func() error
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	return newRootCommand().cmd
}

func newRootCommand() *rootCommand {
	var cfgFile string
	root := &rootCommand{}

	rootCmd := &cobra.Command{
		Use:   "sqlkit",
		Short: "sqlkit - extensible SQL expression parser",
		Long: `sqlkit tokenizes and parses SQL expressions with a base ANSI grammar
and dialect layers that extend it with their own tokens and operators.

Parsed expressions are printed fully parenthesized, so operator
precedence and associativity are visible at a glance.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger, closer, err := config.NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			root.closeLog = closer

			if path := config.FileUsed(); path != "" {
				logger.Debug("using config file", "path", path)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
` + fmt.Sprintf("commit %s, built %s\n", GitCommit, BuildDate))

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./sqlkit.yaml)")
	flags.StringP("dialect", "d", "", "SQL dialect (default: ansi)")
	flags.StringP("output", "o", "", "Output format (auto|text|json)")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.Int("workers", 0, "Expressions parsed in parallel by parse --file")
	flags.Int("max-depth", 0, "Maximum expression nesting depth (0 disables the limit)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputModes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewTokensCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	root.cmd = rootCmd
	return root
}

// execute runs the command and then closes the log file whether or not the
// command succeeded.
func (r *rootCommand) execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.closeLog != nil {
		if cerr := r.closeLog(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close log file: %w", cerr)
		}
	}
	return err
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	if err := newRootCommand().execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sqlkit.

To load completions:

Bash:
  $ source <(sqlkit completion bash)

Zsh:
  $ sqlkit completion zsh > "${fpath[1]}/_sqlkit"

Fish:
  $ sqlkit completion fish | source

PowerShell:
  PS> sqlkit completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
