package core

import (
	"strings"

	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Expr is an expression node. X is the custom expression type of the
// dialect stack that built the tree; trees built for different X are
// distinct types.
type Expr[X any] interface {
	Pos() token.Position
	exprNode(X)
}

// ---------- Expression Types ----------

// LiteralKind represents the type of a literal.
type LiteralKind int

// LiteralKind constants for SQL literal value types.
const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// String returns the kind name.
func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	case LiteralBool:
		return "bool"
	case LiteralNull:
		return "null"
	default:
		return "unknown"
	}
}

// Literal represents a literal value. Value holds the source spelling,
// unescaped for strings.
type Literal[X any] struct {
	Kind  LiteralKind
	Value string
	Start token.Position
}

func (*Literal[X]) exprNode(X) {}

// Pos implements Expr.
func (l *Literal[X]) Pos() token.Position { return l.Start }

// Ident is a possibly qualified name such as t.col.
type Ident[X any] struct {
	Parts []string
	Start token.Position
}

func (*Ident[X]) exprNode(X) {}

// Pos implements Expr.
func (i *Ident[X]) Pos() token.Position { return i.Start }

// Name returns the dotted name.
func (i *Ident[X]) Name() string { return strings.Join(i.Parts, ".") }

// Unary is a prefix operator applied to one operand.
type Unary[X any] struct {
	Op       token.Kind
	Operator string // spelling, e.g. "-", "!", "NOT"
	Operand  Expr[X]
	Start    token.Position
}

func (*Unary[X]) exprNode(X) {}

// Pos implements Expr.
func (u *Unary[X]) Pos() token.Position { return u.Start }

// Binary is an infix operator applied to two operands. For dialect
// operators Op is token.Custom and Operator carries the symbol.
type Binary[X any] struct {
	Left     Expr[X]
	Op       token.Kind
	Operator string
	Right    Expr[X]
}

func (*Binary[X]) exprNode(X) {}

// Pos implements Expr.
func (b *Binary[X]) Pos() token.Position {
	if b.Left != nil {
		return b.Left.Pos()
	}
	return token.Position{}
}

// Call is a function call. Star is set for f(*), in which case Args is empty.
type Call[X any] struct {
	Name  string
	Args  []Expr[X]
	Star  bool
	Start token.Position
}

func (*Call[X]) exprNode(X) {}

// Pos implements Expr.
func (c *Call[X]) Pos() token.Position { return c.Start }

// Custom holds a dialect-defined expression. Value owns any
// sub-expressions it refers to.
type Custom[X any] struct {
	Value X
	Start token.Position
}

func (*Custom[X]) exprNode(X) {}

// Pos implements Expr.
func (c *Custom[X]) Pos() token.Position { return c.Start }
