// Package databricks provides the Databricks SQL expression dialect.
// This package is pure Go with no database driver dependencies.
package databricks

import (
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
)

func init() {
	dialect.Register(dialect.Bind(Stack()))
}

// Token is the custom token type of the Databricks stack.
type Token int

// Databricks-specific tokens
const (
	DColon     Token = iota + 1 // ::
	TryCast                     // ?::
	Colon                       // : JSON path
	NullSafeEq                  // <=>
	RLike                       // RLIKE
	Regexp                      // REGEXP (RLIKE alias)
	Div                         // DIV integer division
	ILike                       // ILIKE
)

var tokenNames = map[Token]string{
	DColon:     "DCOLON",
	TryCast:    "TRY_CAST",
	Colon:      "COLON",
	NullSafeEq: "NULL_SAFE_EQ",
	RLike:      "RLIKE",
	Regexp:     "REGEXP",
	Div:        "DIV",
	ILike:      "ILIKE",
}

func (t Token) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "DATABRICKS?"
}

// Databricks is the Databricks dialect layer.
var Databricks = dialect.New[Token, Expr]("databricks").
	Symbol("::", DColon).
	Symbol("?::", TryCast).
	Symbol(":", Colon).
	Symbol("<=>", NullSafeEq).
	Keyword("RLIKE", RLike).
	Keyword("REGEXP", Regexp).
	Keyword("DIV", Div).
	Keyword("ILIKE", ILike).
	InfixWithHandler(DColon, spi.PrecedencePostfix, parseCast).
	InfixWithHandler(TryCast, spi.PrecedencePostfix, parseCast).
	InfixWithHandler(Colon, spi.PrecedencePostfix, parseExtract).
	Infix(NullSafeEq, spi.PrecedenceComparison).
	Infix(RLike, spi.PrecedenceComparison).
	Infix(Regexp, spi.PrecedenceComparison).
	Infix(ILike, spi.PrecedenceComparison).
	Infix(Div, spi.PrecedenceMultiply).
	Build()

// Stack returns Databricks wrapped around the ANSI base.
func Stack() dialect.Stack[Token, Expr] {
	return dialect.Stack[Token, Expr]{
		Name:        "databricks",
		Description: "Databricks: :: and ?:: casts, col:path extraction, <=>, RLIKE/REGEXP, DIV, ILIKE",
		Lexer:       Databricks.Lexer(ansi.Lexer[Token]{}),
		Parser:      Databricks.Parser(ansi.Parser[Token, Expr]{}),
	}
}
