// Package parser drives expression parsing over a stack of dialect layers.
//
// The Parser owns no grammar. It pulls tokens from a spi.TokenStream, skips
// whitespace and comments, and asks the outermost spi.Layer for prefix and
// infix continuations until no infix operator applies.
package parser

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// DefaultMaxDepth bounds prefix nesting unless WithMaxDepth overrides it.
const DefaultMaxDepth = 1000

type options struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures a Parser.
type Option func(*options)

// WithLogger sets the logger used for debug tracing of operator decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxDepth limits how deeply prefix expressions may nest.
// Values below 1 disable the limit.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// Parser parses expressions. It implements spi.Ops for the layers it drives.
type Parser[C, X any] struct {
	tokens   spi.TokenStream[C]
	layer    spi.Layer[C, X]
	logger   *slog.Logger
	maxDepth int
	depth    int
}

var _ spi.Ops[struct{}, struct{}] = (*Parser[struct{}, struct{}])(nil)

// New creates a Parser reading from tokens and dispatching to layer, the
// outermost layer of a dialect stack.
func New[C, X any](tokens spi.TokenStream[C], layer spi.Layer[C, X], opts ...Option) *Parser[C, X] {
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Parser[C, X]{
		tokens:   tokens,
		layer:    layer,
		logger:   o.logger,
		maxDepth: o.maxDepth,
	}
}

// Peek returns the next significant token without consuming it.
// Whitespace and comments in front of it are consumed.
func (p *Parser[C, X]) Peek() (token.Token[C], error) {
	tok, err := p.tokens.PeekSignificant()
	if err != nil {
		return tok, tokenizerFailure[C](err)
	}
	return tok, nil
}

// Next consumes and returns the next significant token.
func (p *Parser[C, X]) Next() (token.Token[C], error) {
	tok, err := p.tokens.NextSignificant()
	if err != nil {
		return tok, tokenizerFailure[C](err)
	}
	return tok, nil
}

// Expect consumes the next token, failing unless it has the given kind.
func (p *Parser[C, X]) Expect(kind token.Kind) (token.Token[C], error) {
	tok, err := p.Next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, p.Unexpected(tok)
	}
	return tok, nil
}

// Precedence returns the infix binding strength of tok as ranked by the
// tokenizer stack.
func (p *Parser[C, X]) Precedence(tok token.Token[C]) int {
	return p.tokens.Precedence(tok)
}

// Unexpected implements spi.Ops.
func (p *Parser[C, X]) Unexpected(tok token.Token[C]) error {
	return unexpected(tok)
}

// ParsePrefix parses one operand through the outermost layer.
func (p *Parser[C, X]) ParsePrefix() (core.Expr[X], error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.maxDepth > 0 && p.depth > p.maxDepth {
		tok, err := p.Peek()
		if err != nil {
			return nil, err
		}
		return nil, &Error[C]{Kind: UnexpectedToken, Token: tok, Pos: tok.Pos, Err: ErrMaxDepth}
	}
	return p.layer.ParsePrefix(p)
}

// ParseInfix asks the outermost layer to extend left with an operator of
// precedence at least minPrec. It reports false when none follows.
func (p *Parser[C, X]) ParseInfix(left core.Expr[X], minPrec int) (core.Expr[X], bool, error) {
	if p.logger.Enabled(context.Background(), slog.LevelDebug) {
		if tok, err := p.Peek(); err == nil {
			p.logger.Debug("infix candidate",
				slog.String("token", tok.Literal),
				slog.Int("precedence", p.Precedence(tok)),
				slog.Int("min_precedence", minPrec),
				slog.String("pos", tok.Pos.String()),
			)
		}
	}
	return p.layer.ParseInfix(p, left, minPrec)
}

// ParseExpression parses a prefix operand and folds infix operators into
// it until none of precedence minPrec or higher follows.
func (p *Parser[C, X]) ParseExpression(minPrec int) (core.Expr[X], error) {
	left, err := p.ParsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		next, ok, err := p.ParseInfix(left, minPrec)
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		left = next
	}
}

// Parse parses one expression that must span the whole input.
func (p *Parser[C, X]) Parse() (core.Expr[X], error) {
	expr, err := p.ParseExpression(spi.PrecedenceNone)
	if err != nil {
		return nil, err
	}
	tok, err := p.Peek()
	if err != nil {
		return nil, err
	}
	if !tok.IsEOF() {
		return nil, p.Unexpected(tok)
	}
	return expr, nil
}
