// Package spi provides Service Provider Interface types for dialect layers
// to interact with the parser without circular dependencies.
//
// A dialect plugs into parsing at two points: a lexer.Rule wrapping the base
// tokenizer rule, and a Layer wrapping the base parser layer. Layers receive
// Ops for every callback. Ops always re-enters the outermost layer, so an
// operand parsed on behalf of an inner layer still sees every extension.
package spi

import (
	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// TokenStream is the token source a parser pulls from. Both token methods
// skip whitespace and comments, and each call is atomic with respect to
// other readers of the same input. *lexer.Tokenizer satisfies it.
type TokenStream[C any] interface {
	PeekSignificant() (token.Token[C], error)
	NextSignificant() (token.Token[C], error)
	Precedence(tok token.Token[C]) int
}

// Ops exposes parser operations to dialect layers and handlers.
type Ops[C, X any] interface {
	// Token access. Whitespace and comments are skipped.
	Peek() (token.Token[C], error)
	Next() (token.Token[C], error)
	Expect(kind token.Kind) (token.Token[C], error)
	Precedence(tok token.Token[C]) int

	// Sub-parsers, dispatched through the outermost layer.
	ParsePrefix() (core.Expr[X], error)
	ParseExpression(minPrec int) (core.Expr[X], error)

	// Unexpected builds the error for tok appearing where it is not
	// allowed: EndOfInput for EOF, UnexpectedToken otherwise.
	Unexpected(tok token.Token[C]) error
}

// Layer is one parser layer of a dialect stack. A layer that wraps another
// handles the cases it owns and forwards the rest to the wrapped layer
// unchanged.
type Layer[C, X any] interface {
	// ParsePrefix parses a complete operand starting at the next token.
	ParsePrefix(p Ops[C, X]) (core.Expr[X], error)

	// ParseInfix extends left with the next infix operator if its
	// precedence is non-zero and at least minPrec. It returns false,
	// consuming nothing, when no such operator follows.
	ParseInfix(p Ops[C, X], left core.Expr[X], minPrec int) (core.Expr[X], bool, error)
}

// PrefixHandler parses a dialect-specific prefix operator.
// Called AFTER the operator token has been consumed.
type PrefixHandler[C, X any] func(p Ops[C, X], op token.Token[C]) (core.Expr[X], error)

// InfixHandler parses a dialect-specific infix operator.
// Called AFTER the operator has been consumed.
// left is the already-parsed left operand.
type InfixHandler[C, X any] func(p Ops[C, X], left core.Expr[X], op token.Token[C]) (core.Expr[X], error)

// Precedence constants for operator precedence parsing.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, ILIKE
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +, NOT
	PrecedencePostfix    = 8 // ::
)
