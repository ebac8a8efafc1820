package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// ---------- Shared handler helpers ----------
// Building blocks for dialect infix and prefix handlers.

// ParseTypeName parses a type name such as INTEGER, varchar(10) or
// decimal(10, 2), as it appears after a cast operator.
func ParseTypeName[C, X any](p spi.Ops[C, X]) (string, error) {
	name, err := p.Expect(token.Ident)
	if err != nil {
		return "", fmt.Errorf("type name: %w", err)
	}

	tok, err := p.Peek()
	if err != nil {
		return "", err
	}
	if tok.Kind != token.LParen {
		return name.Literal, nil
	}
	if _, err := p.Next(); err != nil {
		return "", err
	}

	var params []string
	for {
		param, err := p.Expect(token.Number)
		if err != nil {
			return "", fmt.Errorf("type %s: %w", name.Literal, err)
		}
		params = append(params, param.Literal)

		sep, err := p.Next()
		if err != nil {
			return "", err
		}
		switch sep.Kind {
		case token.Comma:
			continue
		case token.RParen:
			return fmt.Sprintf("%s(%s)", name.Literal, strings.Join(params, ", ")), nil
		}
		return "", fmt.Errorf("type %s: %w", name.Literal, p.Unexpected(sep))
	}
}

// ParsePath parses a dotted field path such as a.b.c, as it appears after
// a path access operator.
func ParsePath[C, X any](p spi.Ops[C, X]) ([]string, error) {
	var path []string
	for {
		field, err := p.Expect(token.Ident)
		if err != nil {
			return nil, fmt.Errorf("path: %w", err)
		}
		path = append(path, field.Literal)

		tok, err := p.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != token.Dot {
			return path, nil
		}
		if _, err := p.Next(); err != nil {
			return nil, err
		}
	}
}

// ParseList parses comma-separated expressions up to and including the
// closing token. The opening token has already been consumed.
func ParseList[C, X any](p spi.Ops[C, X], closing func(token.Token[C]) bool) ([]core.Expr[X], error) {
	tok, err := p.Peek()
	if err != nil {
		return nil, err
	}
	if closing(tok) {
		_, err := p.Next()
		return nil, err
	}

	var items []core.Expr[X]
	for {
		item, err := p.ParseExpression(spi.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		sep, err := p.Next()
		if err != nil {
			return nil, err
		}
		if closing(sep) {
			return items, nil
		}
		if sep.Kind != token.Comma {
			return nil, p.Unexpected(sep)
		}
	}
}

// IsCustom returns a predicate matching custom token c.
func IsCustom[C comparable](c C) func(token.Token[C]) bool {
	return func(tok token.Token[C]) bool {
		return tok.Kind == token.Custom && tok.Custom == c
	}
}
