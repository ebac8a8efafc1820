package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var trivia bool

	cmd := &cobra.Command{
		Use:   "tokens <expr>",
		Short: "Show the tokens an expression lexes into",
		Long: `Run the selected dialect's tokenizer over an expression and list every
token with its position and infix precedence (0 for non-operators).

Whitespace and comments are hidden unless --trivia is set.`,
		Example: `  sqlkit tokens "a <> 1"
  sqlkit tokens -d postgres "doc ->> 'name'" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0], trivia)
		},
	}

	cmd.Flags().BoolVar(&trivia, "trivia", false, "Include whitespace and comment tokens")

	return cmd
}

func runTokens(cmd *cobra.Command, input string, trivia bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	lexemes, lexErr := cmdCtx.Frontend.Tokenize(input)
	if !trivia {
		kept := lexemes[:0]
		for _, l := range lexemes {
			if !l.Trivia {
				kept = append(kept, l)
			}
		}
		lexemes = kept
	}
	cmdCtx.Logger.Debug("tokenized", "tokens", len(lexemes), "error", lexErr)

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if lexemes == nil {
			lexemes = []dialect.Lexeme{}
		}
		if err := r.JSON(lexemes); err != nil {
			return err
		}
		return lexErr
	}

	rows := make([]table.Row, 0, len(lexemes))
	for _, l := range lexemes {
		rows = append(rows, table.Row{l.Kind, l.Literal, l.Span.Start.String(), l.Precedence})
	}
	r.Table(table.Row{"Kind", "Literal", "Position", "Precedence"}, rows)

	// Partial output is shown before the error.
	return lexErr
}
