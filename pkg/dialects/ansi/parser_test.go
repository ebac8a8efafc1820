package ansi_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/parser"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

func parse(input string) (core.Expr[struct{}], error) {
	tz := lexer.NewString[struct{}](input, ansi.Lexer[struct{}]{})
	return parser.New(tz, ansi.Parser[struct{}, struct{}]{}).Parse()
}

func TestParser_Grouping(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a = 1 AND b = 2 OR c", "(((a = 1) AND (b = 2)) OR c)"},
		{"NOT a = b", "(NOT (a = b))"},
		{"! 5", "(!5)"},
		{"-a * b", "((-a) * b)"},
		{"- - 1", "(-(-1))"},
		{"+x", "(+x)"},
		{"'a' || 'b' || 'c'", "(('a' || 'b') || 'c')"},
		{"x LIKE 'a%' and y <> 2", "((x LIKE 'a%') AND (y <> 2))"},
		{"t.col % 2 != 0", "((t.col % 2) != 0)"},
		{"count(*)", "count(*)"},
		{"coalesce(a, b + 1, 'it''s')", "coalesce(a, (b + 1), 'it''s')"},
		{"now()", "now()"},
		{"db.fn(1)", "db.fn(1)"},
		{"true or null", "(TRUE OR NULL)"},
		{`"and" + "my col"`, `("and" + "my col")`},
		{"1 /* one */ + -- plus\n 2", "(1 + 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, format.Expr(expr))
		})
	}
}

func TestParser_Tree(t *testing.T) {
	expr, err := parse("a + f(1)")
	require.NoError(t, err)

	bin, ok := expr.(*core.Binary[struct{}])
	require.True(t, ok)
	assert.Equal(t, token.Plus, bin.Op)
	assert.Equal(t, "+", bin.Operator)
	assert.Equal(t, &core.Ident[struct{}]{Parts: []string{"a"}, Start: token.Position{Line: 1, Column: 1, Offset: 0}}, bin.Left)

	call, ok := bin.Right.(*core.Call[struct{}])
	require.True(t, ok)
	assert.Equal(t, "f", call.Name)
	require.Len(t, call.Args, 1)
	assert.Equal(t, token.Position{Line: 1, Column: 5, Offset: 4}, call.Pos())
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  parser.ErrorKind
		pos   token.Position
	}{
		{"missing operand", "1 +", parser.EndOfInput, token.Position{Line: 1, Column: 4, Offset: 3}},
		{"empty input", "", parser.EndOfInput, token.Position{Line: 1, Column: 1, Offset: 0}},
		{"lone bang", "1 + !", parser.EndOfInput, token.Position{Line: 1, Column: 6, Offset: 5}},
		{"unexpected lead", "* 2", parser.UnexpectedToken, token.Position{Line: 1, Column: 1, Offset: 0}},
		{"trailing token", "1 2", parser.UnexpectedToken, token.Position{Line: 1, Column: 3, Offset: 2}},
		{"unclosed paren", "(1 + 2", parser.EndOfInput, token.Position{Line: 1, Column: 7, Offset: 6}},
		{"bad call args", "f(1 2)", parser.UnexpectedToken, token.Position{Line: 1, Column: 5, Offset: 4}},
		{"dangling dot", "t.", parser.EndOfInput, token.Position{Line: 1, Column: 3, Offset: 2}},
		{"tokenizer failure", "1 + ?", parser.TokenizerFailure, token.Position{Line: 1, Column: 5, Offset: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.input)
			require.Error(t, err)

			kind, ok := parser.KindOf(err)
			require.True(t, ok, "not a parser error: %v", err)
			assert.Equal(t, tt.kind, kind, "error: %v", err)
			assert.True(t, errors.Is(err, tt.kind))

			var perr *parser.Error[struct{}]
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.pos, perr.Pos)
		})
	}
}

func TestParser_TokenizerFailureUnwraps(t *testing.T) {
	_, err := parse("1 + ?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, lexer.ErrUnexpectedChar))
	assert.Equal(t, "line 1, column 5: unexpected character '?'", err.Error())
}

func TestStackRegistered(t *testing.T) {
	stack := ansi.Stack()
	assert.Equal(t, "ansi", stack.Name)
	assert.NotEmpty(t, stack.Description)
}
