package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

type note string

type tagged struct{ tag string }

func (t tagged) String() string { return "<" + t.tag + ">" }

func (t tagged) TreeNode() map[string]any { return map[string]any{"tag": t.tag} }

// wrapped embeds a node to satisfy core.Expr without being one of the
// known node types.
type wrapped struct {
	*core.Literal[note]
}

func (w wrapped) String() string { return "wrapped:" + w.Value }

func num(v string) *core.Literal[note] { return &core.Literal[note]{Kind: core.LiteralNumber, Value: v} }

func TestFormat_Expressions(t *testing.T) {
	tests := []struct {
		name string
		expr core.Expr[note]
		want string
	}{
		{"number", num("1.5"), "1.5"},
		{"string escapes quotes", &core.Literal[note]{Kind: core.LiteralString, Value: "it's"}, "'it''s'"},
		{"bool upper", &core.Literal[note]{Kind: core.LiteralBool, Value: "true"}, "TRUE"},
		{"null", &core.Literal[note]{Kind: core.LiteralNull, Value: "null"}, "NULL"},
		{"plain ident", &core.Ident[note]{Parts: []string{"t", "col_1"}}, "t.col_1"},
		{"quoted ident", &core.Ident[note]{Parts: []string{"my col", `a"b`}}, `"my col"."a""b"`},
		{"keyword ident", &core.Ident[note]{Parts: []string{"null"}}, `"null"`},
		{"digit-leading ident", &core.Ident[note]{Parts: []string{"1x"}}, `"1x"`},
		{"binary", &core.Binary[note]{Left: num("1"), Op: token.Plus, Operator: "+", Right: num("2")}, "(1 + 2)"},
		{"bang", &core.Unary[note]{Op: token.Not, Operator: "!", Operand: num("5")}, "(!5)"},
		{"not keyword", &core.Unary[note]{Op: token.Not, Operator: "NOT", Operand: &core.Ident[note]{Parts: []string{"x"}}}, "(NOT x)"},
		{"minus", &core.Unary[note]{Op: token.Minus, Operator: "-", Operand: num("3")}, "(-3)"},
		{"call", &core.Call[note]{Name: "f", Args: []core.Expr[note]{num("1"), &core.Ident[note]{Parts: []string{"b"}}}}, "f(1, b)"},
		{"star call", &core.Call[note]{Name: "count", Star: true}, "count(*)"},
		{"custom without stringer", &core.Custom[note]{Value: "raw"}, "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Expr(tt.expr))
		})
	}
}

func TestFormat_CustomStringer(t *testing.T) {
	expr := &core.Binary[tagged]{
		Left:     &core.Custom[tagged]{Value: tagged{"x"}},
		Op:       token.Star,
		Operator: "*",
		Right:    &core.Literal[tagged]{Kind: core.LiteralNumber, Value: "2"},
	}
	assert.Equal(t, "(<x> * 2)", format.Expr[tagged](expr))
	assert.Equal(t, map[string]any{
		"type":     "binary",
		"operator": "*",
		"left":     map[string]any{"tag": "x", "type": "custom"},
		"right":    map[string]any{"type": "literal", "kind": "number", "value": "2"},
	}, format.Tree[tagged](expr))
}

func TestTree(t *testing.T) {
	call := &core.Call[note]{
		Name: "count",
		Star: true,
	}
	assert.Equal(t, map[string]any{
		"type": "call",
		"name": "count",
		"args": []any{},
		"star": true,
	}, format.Tree[note](call))

	unary := &core.Unary[note]{Op: token.Minus, Operator: "-", Operand: &core.Ident[note]{Parts: []string{"a", "b"}}}
	assert.Equal(t, map[string]any{
		"type":     "unary",
		"operator": "-",
		"operand":  map[string]any{"type": "ident", "name": "a.b"},
	}, format.Tree[note](unary))

	assert.Equal(t, map[string]any{"type": "custom", "value": "n"}, format.Tree[note](&core.Custom[note]{Value: "n"}))
	assert.Nil(t, format.Tree[note](nil))
	assert.Equal(t, "", format.Expr[note](nil))
}

func TestFormat_UnknownNode(t *testing.T) {
	expr := &core.Binary[note]{
		Left:     num("1"),
		Op:       token.Plus,
		Operator: "+",
		Right:    wrapped{num("2")},
	}

	assert.Equal(t, "(1 + wrapped:2)", format.Expr(expr))
	assert.Equal(t, map[string]any{
		"type":  "unknown",
		"go":    "format_test.wrapped",
		"value": "wrapped:2",
	}, format.Tree[note](wrapped{num("2")}))
}

func TestQuoteIdentifierIfNeeded(t *testing.T) {
	assert.Equal(t, "abc", format.QuoteIdentifierIfNeeded("abc"))
	assert.Equal(t, "a$1", format.QuoteIdentifierIfNeeded("a$1"))
	assert.Equal(t, `"AND"`, format.QuoteIdentifierIfNeeded("AND"))
	assert.Equal(t, `""`, format.QuoteIdentifierIfNeeded(""))
}
