package acme

import (
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/ansi"
)

func init() {
	dialect.Register(dialect.Bind(Stack()))

	strict := Stack(Strict())
	strict.Name = "acme-strict"
	strict.Description = "acme without the single-! fallback"
	dialect.Register(dialect.Bind(strict))
}

// Stack returns the acme stack: power(factorial(ansi)) for both the lexer
// and the parser.
func Stack(opts ...Option) dialect.Stack[Token, Expr] {
	return dialect.Stack[Token, Expr]{
		Name:        "acme",
		Description: "ANSI plus !! factorial and ** power",
		Lexer:       NewPowerLexer(NewFactorialLexer(ansi.Lexer[Token]{}, opts...)),
		Parser:      NewParser(ansi.Parser[Token, Expr]{}),
	}
}
