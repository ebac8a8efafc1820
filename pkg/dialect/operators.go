package dialect

import (
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// This file contains operator definitions that form the "toolbox" of
// reusable operator configurations.

// OperatorDef ranks a built-in token kind as an infix operator.
type OperatorDef struct {
	Kind       token.Kind
	Precedence int
}

// ANSIOperators contains standard SQL operators with their precedence.
var ANSIOperators = []OperatorDef{
	// Logical operators (lowest precedence)
	{Kind: token.Or, Precedence: spi.PrecedenceOr},
	{Kind: token.And, Precedence: spi.PrecedenceAnd},

	// Comparison operators
	{Kind: token.Eq, Precedence: spi.PrecedenceComparison},
	{Kind: token.Neq, Precedence: spi.PrecedenceComparison},
	{Kind: token.Lt, Precedence: spi.PrecedenceComparison},
	{Kind: token.Gt, Precedence: spi.PrecedenceComparison},
	{Kind: token.LtEq, Precedence: spi.PrecedenceComparison},
	{Kind: token.GtEq, Precedence: spi.PrecedenceComparison},
	{Kind: token.Like, Precedence: spi.PrecedenceComparison},

	// Arithmetic operators
	{Kind: token.Plus, Precedence: spi.PrecedenceAddition},
	{Kind: token.Minus, Precedence: spi.PrecedenceAddition},
	{Kind: token.Concat, Precedence: spi.PrecedenceAddition}, // || string concatenation

	// Multiplicative operators (highest precedence for binary ops)
	{Kind: token.Star, Precedence: spi.PrecedenceMultiply},
	{Kind: token.Slash, Precedence: spi.PrecedenceMultiply},
	{Kind: token.Percent, Precedence: spi.PrecedenceMultiply},
}

// PrecedenceTable merges operator sets into a lookup table. Later sets
// override earlier ones.
func PrecedenceTable(sets ...[]OperatorDef) map[token.Kind]int {
	table := make(map[token.Kind]int)
	for _, set := range sets {
		for _, op := range set {
			table[op.Kind] = op.Precedence
		}
	}
	return table
}
