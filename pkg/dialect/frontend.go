package dialect

import (
	"fmt"

	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/parser"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Lexeme is a token with its custom payload rendered as text.
type Lexeme struct {
	Kind       string     `json:"kind"`
	Literal    string     `json:"literal"`
	Span       token.Span `json:"span"`
	Precedence int        `json:"precedence,omitempty"`
	Trivia     bool       `json:"-"`
}

// Result is a successfully parsed expression.
type Result struct {
	Dialect string `json:"dialect"`
	Input   string `json:"input"`
	Text    string `json:"text"` // fully parenthesized rendering
	Tree    any    `json:"tree"`
}

// Frontend is a complete dialect stack with its type parameters bound, so
// callers can pick one by name at runtime.
type Frontend interface {
	Name() string
	Description() string
	Tokenize(input string) ([]Lexeme, error)
	Parse(input string, opts ...parser.Option) (*Result, error)
}

// Stack is the outermost lexer rule and parser layer of a dialect.
type Stack[C, X any] struct {
	Name        string
	Description string
	Lexer       lexer.Rule[C]
	Parser      spi.Layer[C, X]
}

// Bind turns a stack into a Frontend.
func Bind[C, X any](s Stack[C, X]) Frontend {
	return &frontend[C, X]{stack: s}
}

type frontend[C, X any] struct {
	stack Stack[C, X]
}

func (f *frontend[C, X]) Name() string        { return f.stack.Name }
func (f *frontend[C, X]) Description() string { return f.stack.Description }

func (f *frontend[C, X]) Tokenize(input string) ([]Lexeme, error) {
	tz := lexer.NewString(input, f.stack.Lexer)
	var out []Lexeme
	for {
		tok, err := tz.NextToken()
		if err != nil {
			return out, err
		}
		if tok.IsEOF() {
			return out, nil
		}
		kind := tok.Kind.String()
		if tok.Kind == token.Custom {
			kind = fmt.Sprint(tok.Custom)
		}
		out = append(out, Lexeme{
			Kind:       kind,
			Literal:    tok.Literal,
			Span:       token.Span{Start: tok.Pos, End: tz.Pos()},
			Precedence: tz.Precedence(tok),
			Trivia:     token.IsTrivia(tok.Kind),
		})
	}
}

func (f *frontend[C, X]) Parse(input string, opts ...parser.Option) (*Result, error) {
	tz := lexer.NewString(input, f.stack.Lexer)
	expr, err := parser.New(tz, f.stack.Parser, opts...).Parse()
	if err != nil {
		return nil, err
	}
	return &Result{
		Dialect: f.stack.Name,
		Input:   input,
		Text:    format.Expr(expr),
		Tree:    format.Tree(expr),
	}, nil
}
