package format

import (
	"fmt"

	"github.com/leapstack-labs/sqlkit/pkg/core"
)

// TreeNoder is implemented by custom expression values that want a
// structured JSON rendering instead of their String form.
type TreeNoder interface {
	TreeNode() map[string]any
}

// Tree converts e into nested maps suitable for encoding/json. Every node
// carries a "type" field.
func Tree[X any](e core.Expr[X]) any {
	if e == nil {
		return nil
	}

	switch expr := e.(type) {
	case *core.Literal[X]:
		return map[string]any{
			"type":  "literal",
			"kind":  expr.Kind.String(),
			"value": expr.Value,
		}
	case *core.Ident[X]:
		return map[string]any{
			"type": "ident",
			"name": expr.Name(),
		}
	case *core.Unary[X]:
		return map[string]any{
			"type":     "unary",
			"operator": expr.Operator,
			"operand":  Tree(expr.Operand),
		}
	case *core.Binary[X]:
		return map[string]any{
			"type":     "binary",
			"operator": expr.Operator,
			"left":     Tree(expr.Left),
			"right":    Tree(expr.Right),
		}
	case *core.Call[X]:
		args := make([]any, 0, len(expr.Args))
		for _, arg := range expr.Args {
			args = append(args, Tree(arg))
		}
		node := map[string]any{
			"type": "call",
			"name": expr.Name,
			"args": args,
		}
		if expr.Star {
			node["star"] = true
		}
		return node
	case *core.Custom[X]:
		if t, ok := any(expr.Value).(TreeNoder); ok {
			node := t.TreeNode()
			if _, ok := node["type"]; !ok {
				node["type"] = "custom"
			}
			return node
		}
		return map[string]any{
			"type":  "custom",
			"value": fmt.Sprint(expr.Value),
		}
	default:
		return map[string]any{
			"type":  "unknown",
			"go":    fmt.Sprintf("%T", e),
			"value": fmt.Sprintf("%v", e),
		}
	}
}
