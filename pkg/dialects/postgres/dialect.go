// Package postgres provides the PostgreSQL expression dialect.
// It is built with the table-driven dialect builder on top of ANSI and
// has no database driver dependencies.
package postgres

import (
	"fmt"

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

// Token is the custom token type of the PostgreSQL stack.
type Token int

// PostgreSQL-specific tokens
const (
	DColon    Token = iota + 1 // ::
	Arrow                      // ->
	LongArrow                  // ->>
	Match                      // ~
	NotMatch                   // !~
	Contains                   // @>
	ILike                      // ILIKE
)

func (t Token) String() string {
	switch t {
	case DColon:
		return "DCOLON"
	case Arrow:
		return "ARROW"
	case LongArrow:
		return "LONG_ARROW"
	case Match:
		return "MATCH"
	case NotMatch:
		return "NOT_MATCH"
	case Contains:
		return "CONTAINS"
	case ILike:
		return "ILIKE"
	default:
		return "POSTGRES?"
	}
}

// Cast is expr::type, the only PostgreSQL-specific expression node.
type Cast struct {
	Expr core.Expr[Cast]
	Type string
}

func (c Cast) String() string {
	return "(" + format.Expr(c.Expr) + "::" + c.Type + ")"
}

// TreeNode implements format.TreeNoder.
func (c Cast) TreeNode() map[string]any {
	return map[string]any{"type": "cast", "expr": format.Tree(c.Expr), "to": c.Type}
}

// Postgres is the PostgreSQL dialect layer.
// JSON access binds tighter than arithmetic; :: binds tightest of all.
var Postgres = dialect.New[Token, Cast]("postgres").
	Symbol("::", DColon).
	Symbol("->>", LongArrow).
	Symbol("->", Arrow).
	Symbol("!~", NotMatch).
	Symbol("~", Match).
	Symbol("@>", Contains).
	Keyword("ILIKE", ILike).
	InfixWithHandler(DColon, spi.PrecedencePostfix, parseCast).
	Infix(Arrow, spi.PrecedenceUnary).
	Infix(LongArrow, spi.PrecedenceUnary).
	Infix(Match, spi.PrecedenceComparison).
	Infix(NotMatch, spi.PrecedenceComparison).
	Infix(Contains, spi.PrecedenceComparison).
	Infix(ILike, spi.PrecedenceComparison).
	Build()

// Stack returns Postgres wrapped around the ANSI base.
func Stack() dialect.Stack[Token, Cast] {
	return dialect.Stack[Token, Cast]{
		Name:        "postgres",
		Description: "PostgreSQL: :: casts, JSON -> ->>, regex ~ !~, @> containment, ILIKE",
		Lexer:       Postgres.Lexer(ansi.Lexer[Token]{}),
		Parser:      Postgres.Parser(ansi.Parser[Token, Cast]{}),
	}
}

// parseCast handles expr::type.
// The :: has already been consumed.
func parseCast(p spi.Ops[Token, Cast], left core.Expr[Cast], _ token.Token[Token]) (core.Expr[Cast], error) {
	typ, err := dialect.ParseTypeName(p)
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}
	return &core.Custom[Cast]{Value: Cast{Expr: left, Type: typ}, Start: left.Pos()}, nil
}
