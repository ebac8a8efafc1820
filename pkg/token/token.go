// Package token defines the tokens shared by every tokenizer layer.
//
// The built-in kinds cover the ANSI core. Dialects contribute their own
// tokens through the Custom kind, which carries a value of the dialect's
// custom token type C. Layers that do not own C never look inside it.
package token

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a token.
type Kind int

//nolint:revive // names mirror SQL operator spelling
const (
	// Special tokens
	EOF Kind = iota
	Whitespace
	Comment

	// Literals
	Ident  // identifier or "quoted identifier"
	Number // 123, 45.67, 1e10
	String // 'hello'

	// Operators
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Concat    // ||
	Eq        // =
	Neq       // != or <>
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	LParen    // (
	RParen    // )
	Comma     // ,
	Dot       // .
	Semicolon // ;

	// Logical NOT, spelled ! or NOT
	Not

	// Keywords
	And
	Or
	Like
	True
	False
	Null

	// Custom is a token contributed by a dialect.
	Custom
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Whitespace: "WHITESPACE",
	Comment:    "COMMENT",

	Ident:  "IDENT",
	Number: "NUMBER",
	String: "STRING",

	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Concat:    "||",
	Eq:        "=",
	Neq:       "!=",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	LParen:    "(",
	RParen:    ")",
	Comma:     ",",
	Dot:       ".",
	Semicolon: ";",

	Not: "NOT",

	And:   "AND",
	Or:    "OR",
	Like:  "LIKE",
	True:  "TRUE",
	False: "FALSE",
	Null:  "NULL",

	Custom: "CUSTOM",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// keywords maps folded keyword spellings to their kinds.
var keywords = map[string]Kind{
	"and":   And,
	"or":    Or,
	"not":   Not,
	"like":  Like,
	"true":  True,
	"false": False,
	"null":  Null,
}

// LookupKeyword returns the keyword kind for a case-folded word.
// Returns Ident and false for anything that is not a keyword.
func LookupKeyword(folded string) (Kind, bool) {
	if k, ok := keywords[folded]; ok {
		return k, true
	}
	return Ident, false
}

// IsKeyword returns true if the kind is spelled as a word.
func IsKeyword(k Kind) bool {
	return k >= And && k <= Null
}

// IsOperator returns true if the kind is punctuation or an operator symbol.
func IsOperator(k Kind) bool {
	return k >= Plus && k <= Semicolon
}

// IsTrivia returns true for tokens the parser skips.
func IsTrivia(k Kind) bool {
	return k == Whitespace || k == Comment
}

// Token is a lexical token. C is the custom token type of the dialect
// stack that produced it; Custom is only meaningful when Kind is Custom.
type Token[C any] struct {
	Kind    Kind
	Literal string // source text, or the unescaped body for strings and quoted identifiers
	Pos     Position
	Custom  C
}

// New returns a built-in token.
func New[C any](kind Kind, literal string, pos Position) Token[C] {
	return Token[C]{Kind: kind, Literal: literal, Pos: pos}
}

// NewCustom returns a dialect token carrying c.
func NewCustom[C any](c C, literal string, pos Position) Token[C] {
	return Token[C]{Kind: Custom, Literal: literal, Pos: pos, Custom: c}
}

// IsEOF returns true at end of input.
func (t Token[C]) IsEOF() bool {
	return t.Kind == EOF
}

// Symbol returns the operator spelling used when printing the token:
// keywords in upper case, everything else as written.
func (t Token[C]) Symbol() string {
	if IsKeyword(t.Kind) || (t.Kind == Not && t.Literal != "!") {
		return strings.ToUpper(t.Literal)
	}
	return t.Literal
}

// String returns a debugging representation of the token.
func (t Token[C]) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Ident, Number, String, Custom:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Literal)
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}
