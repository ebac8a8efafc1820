package duckdb

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Expr is a DuckDB-specific expression node.
type Expr interface {
	fmt.Stringer
	format.TreeNoder
	duckdbExpr()
}

// Cast is expr::type.
type Cast struct {
	Expr core.Expr[Expr]
	Type string
}

func (*Cast) duckdbExpr() {}

func (c *Cast) String() string {
	return "(" + format.Expr(c.Expr) + "::" + c.Type + ")"
}

// TreeNode implements format.TreeNoder.
func (c *Cast) TreeNode() map[string]any {
	return map[string]any{"type": "cast", "expr": format.Tree(c.Expr), "to": c.Type}
}

// List is a [a, b, ...] literal.
type List struct {
	Elements []core.Expr[Expr]
}

func (*List) duckdbExpr() {}

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = format.Expr(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TreeNode implements format.TreeNoder.
func (l *List) TreeNode() map[string]any {
	elems := make([]any, len(l.Elements))
	for i, e := range l.Elements {
		elems[i] = format.Tree(e)
	}
	return map[string]any{"type": "list", "elements": elems}
}

// parseCast handles expr::type.
// The :: has already been consumed.
func parseCast(p spi.Ops[Token, Expr], left core.Expr[Expr], _ token.Token[Token]) (core.Expr[Expr], error) {
	typ, err := dialect.ParseTypeName(p)
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}
	return &core.Custom[Expr]{Value: &Cast{Expr: left, Type: typ}, Start: left.Pos()}, nil
}

// parseListLiteral handles [expr, expr, ...].
// The opening [ has already been consumed.
func parseListLiteral(p spi.Ops[Token, Expr], open token.Token[Token]) (core.Expr[Expr], error) {
	elems, err := dialect.ParseList(p, dialect.IsCustom(RBracket))
	if err != nil {
		return nil, fmt.Errorf("list literal: %w", err)
	}
	return &core.Custom[Expr]{Value: &List{Elements: elems}, Start: open.Pos}, nil
}
