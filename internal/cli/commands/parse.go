package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/parser"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	File string
	Tree bool
}

// ParseOutcome is the result of parsing one input expression.
type ParseOutcome struct {
	Line  int    `json:"line,omitempty"`
	Input string `json:"input"`
	Text  string `json:"text,omitempty"`
	Tree  any    `json:"tree,omitempty"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

type parseInput struct {
	line int
	text string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [expr...]",
		Short: "Parse expressions and print them fully parenthesized",
		Long: `Parse one or more SQL expressions with the selected dialect.

Each argument is parsed as one expression. With --file, every non-blank line
of the file is an expression; lines are parsed concurrently (see --workers)
and reported in input order.`,
		Example: `  # Show how operators group
  sqlkit parse "1 + 2 * 3"

  # Use a dialect extension
  sqlkit parse -d acme "1 + !! 5 * 2"

  # Parse a file of expressions as JSON
  sqlkit parse --file exprs.sql -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read one expression per line (- for stdin)")
	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "Also print the expression tree as JSON")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(cmd.InOrStdin(), args, opts.File)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no expressions given\nHint: pass an expression argument or use --file")
	}

	outcomes, err := parseAll(cmd.Context(), cmdCtx.Frontend, inputs, cmdCtx.Cfg.Workers, cmdCtx.ParserOptions()...)
	if err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	cmdCtx.Logger.Info("parse complete", "dialect", cmdCtx.Frontend.Name(), "expressions", len(outcomes), "failed", failed)

	// A single expression reports its error directly.
	if len(outcomes) == 1 && opts.File == "" && outcomes[0].Err != nil {
		return outcomes[0].Err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(map[string]any{
			"dialect": cmdCtx.Frontend.Name(),
			"results": outcomes,
		}); err != nil {
			return err
		}
	} else if err := renderOutcomes(r, outcomes, opts); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed to parse", failed, len(outcomes))
	}
	return nil
}

func renderOutcomes(r *output.Renderer, outcomes []ParseOutcome, opts *ParseOptions) error {
	for _, o := range outcomes {
		if o.Err != nil {
			if o.Line > 0 {
				r.Errorf("%s:%d: %v", opts.File, o.Line, o.Err)
			} else {
				r.Errorf("%q: %v", o.Input, o.Err)
			}
			continue
		}
		r.Println(o.Text)
		if opts.Tree {
			if err := r.JSON(o.Tree); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectInputs gathers expressions from args and, if set, a file.
func collectInputs(stdin io.Reader, args []string, file string) ([]parseInput, error) {
	inputs := make([]parseInput, 0, len(args))
	for _, a := range args {
		inputs = append(inputs, parseInput{text: a})
	}
	if file == "" {
		return inputs, nil
	}

	var src io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer func() { _ = f.Close() }()
		src = f
	}

	scanner := bufio.NewScanner(src)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		inputs = append(inputs, parseInput{line: line, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return inputs, nil
}

// parseAll parses inputs concurrently with at most workers in flight.
// Outcomes are returned in input order; per-expression failures are
// recorded in the outcome, and only cancellation aborts the batch.
func parseAll(ctx context.Context, fe dialect.Frontend, inputs []parseInput, workers int, opts ...parser.Option) ([]ParseOutcome, error) {
	outcomes := make([]ParseOutcome, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o := ParseOutcome{Line: in.line, Input: in.text}
			res, err := fe.Parse(in.text, opts...)
			if err != nil {
				o.Err = err
				o.Error = err.Error()
			} else {
				o.Text = res.Text
				o.Tree = res.Tree
			}
			outcomes[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
