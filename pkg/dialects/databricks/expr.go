package databricks

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Expr is a Databricks-specific expression node.
type Expr interface {
	fmt.Stringer
	format.TreeNoder
	databricksExpr()
}

// Cast is expr::type, or expr?::type when Try is set.
type Cast struct {
	Expr core.Expr[Expr]
	Type string
	Try  bool
}

func (*Cast) databricksExpr() {}

func (c *Cast) operator() string {
	if c.Try {
		return "?::"
	}
	return "::"
}

func (c *Cast) String() string {
	return "(" + format.Expr(c.Expr) + c.operator() + c.Type + ")"
}

// TreeNode implements format.TreeNoder.
func (c *Cast) TreeNode() map[string]any {
	return map[string]any{"type": "cast", "expr": format.Tree(c.Expr), "to": c.Type, "try": c.Try}
}

// Extract is col:path, a field lookup inside a JSON string column.
type Extract struct {
	Expr core.Expr[Expr]
	Path []string
}

func (*Extract) databricksExpr() {}

func (e *Extract) String() string {
	return "(" + format.Expr(e.Expr) + ":" + strings.Join(e.Path, ".") + ")"
}

// TreeNode implements format.TreeNoder.
func (e *Extract) TreeNode() map[string]any {
	return map[string]any{"type": "extract", "expr": format.Tree(e.Expr), "path": e.Path}
}

// parseCast handles expr::type and expr?::type.
// The operator has already been consumed.
func parseCast(p spi.Ops[Token, Expr], left core.Expr[Expr], op token.Token[Token]) (core.Expr[Expr], error) {
	typ, err := dialect.ParseTypeName(p)
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}
	cast := &Cast{Expr: left, Type: typ, Try: op.Custom == TryCast}
	return &core.Custom[Expr]{Value: cast, Start: left.Pos()}, nil
}

// parseExtract handles col:a.b.
func parseExtract(p spi.Ops[Token, Expr], left core.Expr[Expr], _ token.Token[Token]) (core.Expr[Expr], error) {
	path, err := dialect.ParsePath(p)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return &core.Custom[Expr]{Value: &Extract{Expr: left, Path: path}, Start: left.Pos()}, nil
}
