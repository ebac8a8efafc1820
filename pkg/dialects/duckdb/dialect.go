// Package duckdb provides the DuckDB expression dialect.
// It is built with the table-driven dialect builder on top of ANSI and
// has no database driver dependencies.
package duckdb

import (
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
)

func init() {
	dialect.Register(dialect.Bind(Stack()))
}

// Token is the custom token type of the DuckDB stack.
type Token int

// DuckDB-specific tokens
const (
	DColon   Token = iota + 1 // ::
	DSlash                    // // integer division
	Power                     // **
	ILike                     // ILIKE
	LBracket                  // [
	RBracket                  // ]
)

var tokenNames = map[Token]string{
	DColon:   "DCOLON",
	DSlash:   "DSLASH",
	Power:    "POWER",
	ILike:    "ILIKE",
	LBracket: "LBRACKET",
	RBracket: "RBRACKET",
}

func (t Token) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "DUCKDB?"
}

// DuckDB is the DuckDB dialect layer.
var DuckDB = dialect.New[Token, Expr]("duckdb").
	Symbol("::", DColon).
	Symbol("//", DSlash).
	Symbol("**", Power).
	Symbol("[", LBracket).
	Symbol("]", RBracket).
	Keyword("ILIKE", ILike).
	InfixWithHandler(DColon, spi.PrecedencePostfix, parseCast).
	Infix(DSlash, spi.PrecedenceMultiply).
	Infix(Power, spi.PrecedenceMultiply+1).
	Infix(ILike, spi.PrecedenceComparison).
	Prefix(LBracket, parseListLiteral).
	Build()

// Stack returns DuckDB wrapped around the ANSI base.
func Stack() dialect.Stack[Token, Expr] {
	return dialect.Stack[Token, Expr]{
		Name:        "duckdb",
		Description: "DuckDB: :: casts, // integer division, ** power, ILIKE, [list] literals",
		Lexer:       DuckDB.Lexer(ansi.Lexer[Token]{}),
		Parser:      DuckDB.Parser(ansi.Parser[Token, Expr]{}),
	}
}
