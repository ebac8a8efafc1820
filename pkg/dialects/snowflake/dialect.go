// Package snowflake provides the Snowflake SQL expression dialect.
// This package is pure Go with no database driver dependencies.
package snowflake

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

func init() {
	dialect.Register(dialect.Bind(Stack()))
}

// Token is the custom token type of the Snowflake stack.
type Token int

// Snowflake-specific tokens
const (
	DColon Token = iota + 1 // ::
	Colon                   // : semi-structured path
	RLike                   // RLIKE
	Regexp                  // REGEXP (RLIKE alias)
	ILike                   // ILIKE
)

func (t Token) String() string {
	switch t {
	case DColon:
		return "DCOLON"
	case Colon:
		return "COLON"
	case RLike:
		return "RLIKE"
	case Regexp:
		return "REGEXP"
	case ILike:
		return "ILIKE"
	default:
		return "SNOWFLAKE?"
	}
}

// Node is a Snowflake-specific expression: a cast when Type is set,
// otherwise a path lookup into a VARIANT value.
type Node struct {
	Expr core.Expr[Node]
	Type string
	Path []string
}

func (n Node) String() string {
	if n.Type != "" {
		return "(" + format.Expr(n.Expr) + "::" + n.Type + ")"
	}
	return "(" + format.Expr(n.Expr) + ":" + strings.Join(n.Path, ".") + ")"
}

// TreeNode implements format.TreeNoder.
func (n Node) TreeNode() map[string]any {
	if n.Type != "" {
		return map[string]any{"type": "cast", "expr": format.Tree(n.Expr), "to": n.Type}
	}
	return map[string]any{"type": "path", "expr": format.Tree(n.Expr), "path": n.Path}
}

// Snowflake is the Snowflake dialect layer.
var Snowflake = dialect.New[Token, Node]("snowflake").
	Symbol("::", DColon).
	Symbol(":", Colon).
	Keyword("RLIKE", RLike).
	Keyword("REGEXP", Regexp).
	Keyword("ILIKE", ILike).
	InfixWithHandler(DColon, spi.PrecedencePostfix, parseCast).
	InfixWithHandler(Colon, spi.PrecedencePostfix, parsePath).
	Infix(RLike, spi.PrecedenceComparison).
	Infix(Regexp, spi.PrecedenceComparison).
	Infix(ILike, spi.PrecedenceComparison).
	Build()

// Stack returns Snowflake wrapped around the ANSI base.
func Stack() dialect.Stack[Token, Node] {
	return dialect.Stack[Token, Node]{
		Name:        "snowflake",
		Description: "Snowflake: :: casts, v:path lookups, RLIKE/REGEXP, ILIKE",
		Lexer:       Snowflake.Lexer(ansi.Lexer[Token]{}),
		Parser:      Snowflake.Parser(ansi.Parser[Token, Node]{}),
	}
}

func parseCast(p spi.Ops[Token, Node], left core.Expr[Node], _ token.Token[Token]) (core.Expr[Node], error) {
	typ, err := dialect.ParseTypeName(p)
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}
	return &core.Custom[Node]{Value: Node{Expr: left, Type: typ}, Start: left.Pos()}, nil
}

func parsePath(p spi.Ops[Token, Node], left core.Expr[Node], _ token.Token[Token]) (core.Expr[Node], error) {
	path, err := dialect.ParsePath(p)
	if err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}
	return &core.Custom[Node]{Value: Node{Expr: left, Path: path}, Start: left.Pos()}, nil
}
