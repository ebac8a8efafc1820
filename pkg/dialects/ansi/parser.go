package ansi

import (
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Parser is the base parser layer: literals, names, function calls, unary
// operators, parentheses, and binary operators for every token the
// tokenizer stack ranks. It never looks inside custom tokens or
// expressions.
type Parser[C, X any] struct{}

// ParsePrefix parses one operand.
func (Parser[C, X]) ParsePrefix(p spi.Ops[C, X]) (core.Expr[X], error) {
	tok, err := p.Next()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case token.Number:
		return &core.Literal[X]{Kind: core.LiteralNumber, Value: tok.Literal, Start: tok.Pos}, nil
	case token.String:
		return &core.Literal[X]{Kind: core.LiteralString, Value: tok.Literal, Start: tok.Pos}, nil
	case token.True, token.False:
		return &core.Literal[X]{Kind: core.LiteralBool, Value: strings.ToUpper(tok.Literal), Start: tok.Pos}, nil
	case token.Null:
		return &core.Literal[X]{Kind: core.LiteralNull, Value: "NULL", Start: tok.Pos}, nil

	case token.Ident:
		return parseName(p, tok)

	case token.Minus, token.Plus:
		return parseUnary(p, tok, spi.PrecedenceUnary)
	case token.Not:
		return parseUnary(p, tok, spi.PrecedenceNot)

	case token.LParen:
		expr, err := p.ParseExpression(spi.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.Expect(token.RParen); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, p.Unexpected(tok)
}

// ParseInfix folds the next ranked operator into a binary expression.
func (Parser[C, X]) ParseInfix(p spi.Ops[C, X], left core.Expr[X], minPrec int) (core.Expr[X], bool, error) {
	tok, err := p.Peek()
	if err != nil {
		return nil, false, err
	}
	prec := p.Precedence(tok)
	if prec == spi.PrecedenceNone || prec < minPrec {
		return left, false, nil
	}
	if _, err := p.Next(); err != nil {
		return nil, false, err
	}

	// Parse right operand with higher precedence (left-associative)
	right, err := p.ParseExpression(prec + 1)
	if err != nil {
		return nil, false, err
	}
	return &core.Binary[X]{Left: left, Op: tok.Kind, Operator: tok.Symbol(), Right: right}, true, nil
}

func parseUnary[C, X any](p spi.Ops[C, X], op token.Token[C], prec int) (core.Expr[X], error) {
	operand, err := p.ParseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &core.Unary[X]{Op: op.Kind, Operator: op.Symbol(), Operand: operand, Start: op.Pos}, nil
}

// parseName parses a possibly qualified identifier and, if a parenthesis
// follows, a function call on it.
func parseName[C, X any](p spi.Ops[C, X], first token.Token[C]) (core.Expr[X], error) {
	parts := []string{first.Literal}
	for {
		tok, err := p.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != token.Dot {
			break
		}
		if _, err := p.Next(); err != nil {
			return nil, err
		}
		part, err := p.Expect(token.Ident)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part.Literal)
	}

	tok, err := p.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.LParen {
		return &core.Ident[X]{Parts: parts, Start: first.Pos}, nil
	}
	if _, err := p.Next(); err != nil {
		return nil, err
	}
	return parseCallArgs(p, &core.Call[X]{Name: strings.Join(parts, "."), Start: first.Pos})
}

// parseCallArgs parses f(), f(*) and f(a, b). The opening parenthesis has
// already been consumed.
func parseCallArgs[C, X any](p spi.Ops[C, X], call *core.Call[X]) (core.Expr[X], error) {
	tok, err := p.Peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.RParen:
		_, err := p.Next()
		return call, err
	case token.Star:
		if _, err := p.Next(); err != nil {
			return nil, err
		}
		if _, err := p.Expect(token.RParen); err != nil {
			return nil, err
		}
		call.Star = true
		return call, nil
	}

	for {
		arg, err := p.ParseExpression(spi.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		tok, err := p.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.Comma:
			continue
		case token.RParen:
			return call, nil
		}
		return nil, p.Unexpected(tok)
	}
}
