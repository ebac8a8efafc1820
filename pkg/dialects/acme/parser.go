package acme

import (
	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Parser parses !! expr and forwards everything else to its base layer.
// ** needs no parser support: the base builds a binary node for any
// operator the tokenizer ranks.
type Parser struct {
	base spi.Layer[Token, Expr]
}

// NewParser wraps base.
func NewParser(base spi.Layer[Token, Expr]) *Parser {
	return &Parser{base: base}
}

// ParsePrefix implements spi.Layer.
func (a *Parser) ParsePrefix(p spi.Ops[Token, Expr]) (core.Expr[Expr], error) {
	tok, err := p.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.Custom || tok.Custom != Factorial {
		return a.base.ParsePrefix(p)
	}

	if _, err := p.Next(); err != nil {
		return nil, err
	}
	operand, err := p.ParseExpression(spi.PrecedenceUnary)
	if err != nil {
		return nil, err
	}
	return &core.Custom[Expr]{Value: Expr{Operand: operand}, Start: tok.Pos}, nil
}

// ParseInfix implements spi.Layer.
func (a *Parser) ParseInfix(p spi.Ops[Token, Expr], left core.Expr[Expr], minPrec int) (core.Expr[Expr], bool, error) {
	return a.base.ParseInfix(p, left, minPrec)
}
