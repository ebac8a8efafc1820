package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/parser"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse expressions",
		Long: `Start an interactive session. Each line is parsed with the current dialect
and printed fully parenthesized. Type .help for commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, historyFile)
		},
	}

	cmd.Flags().StringVar(&historyFile, "history", "", "History file (default: ~/.sqlkit_history)")

	return cmd
}

func runREPL(cmd *cobra.Command, historyFile string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if historyFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			historyFile = filepath.Join(home, ".sqlkit_history")
		}
	}

	session := newREPLSession(cmdCtx.Frontend, cmdCtx.Renderer, cmdCtx.Logger, cmdCtx.ParserOptions())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          session.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cmdCtx.Renderer
	r.Printf("sqlkit REPL (dialect: %s)\n", session.fe.Name())
	r.Println("Type .help for commands, .quit to exit")
	r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if quit := session.eval(line); quit {
			break
		}
		rl.SetPrompt(session.prompt())
	}

	return nil
}

// replSession holds the state of one interactive session.
type replSession struct {
	fe       dialect.Frontend
	r        *output.Renderer
	logger   *slog.Logger
	opts     []parser.Option
	showTree bool
}

func newREPLSession(fe dialect.Frontend, r *output.Renderer, logger *slog.Logger, opts []parser.Option) *replSession {
	return &replSession{fe: fe, r: r, logger: logger, opts: opts}
}

func (s *replSession) prompt() string {
	return fmt.Sprintf("sqlkit(%s)> ", s.fe.Name())
}

// eval handles one input line and reports whether the session should end.
func (s *replSession) eval(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	res, err := s.fe.Parse(strings.TrimSuffix(line, ";"), s.opts...)
	if err != nil {
		s.r.Errorf("Error: %v", err)
		return false
	}
	s.logger.Debug("parsed", "dialect", s.fe.Name(), "input", res.Input, "text", res.Text)

	s.r.Println(s.r.Styles().Success.Render(res.Text))
	if s.showTree {
		if err := s.r.JSON(res.Tree); err != nil {
			s.r.Errorf("Error: %v", err)
		}
	}
	return false
}

func (s *replSession) dotCommand(line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.r.Writer())

	case ".dialects":
		for _, name := range dialect.List() {
			marker := "  "
			if name == s.fe.Name() {
				marker = "* "
			}
			s.r.Println(marker + name)
		}

	case ".dialect":
		if arg == "" {
			s.r.Println(s.fe.Name())
			return false
		}
		fe, err := dialect.Lookup(arg)
		if err != nil {
			s.r.Errorf("Error: %v", err)
			return false
		}
		s.fe = fe
		s.r.Printf("Switched to %s\n", fe.Name())

	case ".tokens":
		if arg == "" {
			s.r.Errorf("Usage: .tokens <expr>")
			return false
		}
		lexemes, err := s.fe.Tokenize(arg)
		for _, l := range lexemes {
			if !l.Trivia {
				s.r.Printf("%-12s %-10q %s\n", l.Kind, l.Literal, s.r.Styles().Muted.Render(l.Span.Start.String()))
			}
		}
		if err != nil {
			s.r.Errorf("Error: %v", err)
		}

	case ".tree":
		s.showTree = !s.showTree
		state := "off"
		if s.showTree {
			state = "on"
		}
		s.r.Printf("Tree output %s\n", state)

	default:
		s.r.Errorf("Unknown command: %s (type .help for commands)", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .dialects        List available dialects
  .dialect [name]  Show or switch the current dialect
  .tokens <expr>   Show the tokens of an expression
  .tree            Toggle JSON tree output
  .quit / .exit    Exit the REPL

Tips:
  - Each line is one expression; a trailing semicolon is ignored
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter creates a readline completer for dot-commands and dialect names.
func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialects"),
		readline.PcItem(".dialect", readline.PcItemDynamic(func(string) []string {
			return dialect.List()
		})),
		readline.PcItem(".tokens"),
		readline.PcItem(".tree"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
