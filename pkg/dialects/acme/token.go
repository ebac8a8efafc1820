// Package acme is a small example dialect built by wrapping the ANSI base.
//
// It adds two operators on top of ANSI:
//
//	!! expr     factorial, a prefix operator binding tighter than * and /
//	a ** b      power, an infix operator carried by the base binary node
//
// Each lives in its own lexer layer, stacked as power(factorial(ansi)), so
// the package doubles as a demonstration of recursive composition.
package acme

// Token is the custom token type of the acme stack.
type Token int

// Acme tokens.
const (
	Factorial Token = iota + 1 // !!
	Power                      // **
)

func (t Token) String() string {
	switch t {
	case Factorial:
		return "FACTORIAL"
	case Power:
		return "POWER"
	default:
		return "ACME?"
	}
}
