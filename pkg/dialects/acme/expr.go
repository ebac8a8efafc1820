package acme

import (
	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/format"
)

// Expr is the custom expression type of the acme stack: a factorial over
// its operand.
type Expr struct {
	Operand core.Expr[Expr]
}

func (e Expr) String() string {
	return "(!!" + format.Expr(e.Operand) + ")"
}

// TreeNode implements format.TreeNoder.
func (e Expr) TreeNode() map[string]any {
	return map[string]any{
		"type":    "factorial",
		"operand": format.Tree(e.Operand),
	}
}
