// Package ansi provides the base ANSI SQL expression dialect.
//
// This dialect serves as the foundation for all other SQL dialects. Its
// Lexer and Parser are generic over the custom token and expression types,
// so a dialect such as DuckDB or acme instantiates them with its own types
// and wraps them, adding behavior without modifying the base.
package ansi

import (
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
)

func init() {
	dialect.Register(dialect.Bind(Stack()))
}

// Stack returns the plain ANSI stack with no custom tokens or expressions.
func Stack() dialect.Stack[struct{}, struct{}] {
	return dialect.Stack[struct{}, struct{}]{
		Name:        "ansi",
		Description: "ANSI SQL expressions",
		Lexer:       Lexer[struct{}]{},
		Parser:      Parser[struct{}, struct{}]{},
	}
}
