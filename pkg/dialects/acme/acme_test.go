package acme_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/acme"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/parser"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

func parseAcme(input string, opts ...acme.Option) (core.Expr[acme.Expr], error) {
	stack := acme.Stack(opts...)
	return parser.New(lexer.NewString(input, stack.Lexer), stack.Parser).Parse()
}

func parseBase(input string) (core.Expr[acme.Expr], error) {
	tz := lexer.NewString[acme.Token](input, ansi.Lexer[acme.Token]{})
	return parser.New(tz, ansi.Parser[acme.Token, acme.Expr]{}).Parse()
}

var baseOnly = []string{
	"1 + 2 * 3",
	"a != b",
	"! 5",
	"!x",
	"NOT x AND y",
	"'!!' || \"!!\"",
	"f(a, -b) * 2 -- !! in a comment",
	"x * y / z",
	"(1)",
}

func TestBaseOnlyInputsMatchBase(t *testing.T) {
	for _, input := range baseOnly {
		t.Run(input, func(t *testing.T) {
			want, err := lexer.All(lexer.NewString[acme.Token](input, ansi.Lexer[acme.Token]{}))
			require.NoError(t, err)
			got, err := lexer.All(lexer.NewString(input, acme.Stack().Lexer))
			require.NoError(t, err)
			assert.Equal(t, want, got)

			wantExpr, err := parseBase(input)
			require.NoError(t, err)
			gotExpr, err := parseAcme(input)
			require.NoError(t, err)
			assert.Equal(t, wantExpr, gotExpr)
		})
	}
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + !! 5 * 2", "(1 + ((!!5) * 2))"},
		{"!! 5", "(!!5)"},
		{"!!!!3", "(!!(!!3))"},
		{"!! -x", "(!!(-x))"},
		{"!! (a + b)", "(!!(a + b))"},
		{"! 5", "(!5)"},
		{"!!a = b", "((!!a) = b)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := parseAcme(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, format.Expr(expr))
		})
	}
}

func TestFactorialNode(t *testing.T) {
	expr, err := parseAcme("!! 5")
	require.NoError(t, err)

	custom, ok := expr.(*core.Custom[acme.Expr])
	require.True(t, ok, "got %T", expr)
	assert.Equal(t, token.Start, custom.Pos())
	assert.Equal(t, &core.Literal[acme.Expr]{Kind: core.LiteralNumber, Value: "5", Start: token.Position{Line: 1, Column: 4, Offset: 3}}, custom.Value.Operand)

	assert.Equal(t, map[string]any{
		"type": "factorial",
		"operand": map[string]any{
			"type":  "literal",
			"kind":  "number",
			"value": "5",
		},
	}, format.Tree(expr))

	bang, err := parseAcme("! 5")
	require.NoError(t, err)
	unary, ok := bang.(*core.Unary[acme.Expr])
	require.True(t, ok, "got %T", bang)
	assert.Equal(t, token.Not, unary.Op)
}

func TestPower(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 ** 3 * 4", "((2 ** 3) * 4)"},
		{"2 * 3 ** 2", "(2 * (3 ** 2))"},
		{"2 ** 3 ** 2", "((2 ** 3) ** 2)"},
		{"-2 ** 2", "(-(2 ** 2))"},
		{"!! 2 ** 3", "(!!(2 ** 3))"},
		{"1 + 2 ** 2", "(1 + (2 ** 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := parseAcme(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, format.Expr(expr))
		})
	}
}

func TestLeadCharFallsBackToBase(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"!", []token.Kind{token.Not}},
		{"!=", []token.Kind{token.Neq}},
		{"!x", []token.Kind{token.Not, token.Ident}},
		{"a ! b", []token.Kind{token.Ident, token.Whitespace, token.Not, token.Whitespace, token.Ident}},
		{"*", []token.Kind{token.Star}},
		{"* *", []token.Kind{token.Star, token.Whitespace, token.Star}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := lexer.All(lexer.NewString(tt.input, acme.Stack().Lexer))
			require.NoError(t, err)
			got := make([]token.Kind, len(toks))
			for i, tok := range toks {
				got[i] = tok.Kind
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoneBang(t *testing.T) {
	t.Run("default falls back to NOT", func(t *testing.T) {
		_, err := parseAcme("1 + !")
		require.Error(t, err)
		kind, ok := parser.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, parser.EndOfInput, kind)
		assert.False(t, errors.Is(err, lexer.ErrEndOfInput))
	})

	t.Run("strict reports tokenizer end of input", func(t *testing.T) {
		_, err := parseAcme("1 + !", acme.Strict())
		require.Error(t, err)
		kind, ok := parser.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, parser.TokenizerFailure, kind)
		assert.True(t, errors.Is(err, lexer.ErrEndOfInput))

		var lexErr *lexer.Error
		require.True(t, errors.As(err, &lexErr))
		assert.Equal(t, token.Position{Line: 1, Column: 6, Offset: 5}, lexErr.Pos)
	})

	t.Run("strict rejects the following character", func(t *testing.T) {
		_, err := parseAcme("!x", acme.Strict())
		require.Error(t, err)
		assert.True(t, errors.Is(err, lexer.ErrUnexpectedChar))
		assert.Equal(t, "line 1, column 2: unexpected character 'x'", err.Error())
	})

	t.Run("strict still parses factorial", func(t *testing.T) {
		expr, err := parseAcme("1 + !! 5 * 2", acme.Strict())
		require.NoError(t, err)
		assert.Equal(t, "(1 + ((!!5) * 2))", format.Expr(expr))
	})
}

func TestSharedCursor(t *testing.T) {
	cursor := lexer.NewCursor("!!1!!")
	dialectTz := lexer.New(cursor, acme.Stack().Lexer)
	baseTz := lexer.New[acme.Token](cursor, ansi.Lexer[acme.Token]{})

	tok, err := dialectTz.NextToken()
	require.NoError(t, err)
	assert.Equal(t, acme.Factorial, tok.Custom)

	tok, err = baseTz.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.Number, tok.Kind)

	// The base tokenizer knows nothing about !!.
	tok, err = baseTz.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.Not, tok.Kind)
	assert.Equal(t, token.Position{Line: 1, Column: 4, Offset: 3}, tok.Pos)

	ch, ok := dialectTz.PeekChar()
	assert.True(t, ok)
	assert.Equal(t, '!', ch)

	tok, err = dialectTz.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.Not, tok.Kind)

	tok, err = baseTz.NextToken()
	require.NoError(t, err)
	assert.True(t, tok.IsEOF())
}

func TestPrecedence(t *testing.T) {
	rule := acme.Stack().Lexer
	assert.Equal(t, acme.PrecedencePower, rule.Precedence(token.NewCustom(acme.Power, "**", token.Start)))
	assert.Equal(t, 0, rule.Precedence(token.NewCustom(acme.Factorial, "!!", token.Start)))
	assert.Equal(t, 5, rule.Precedence(token.New[acme.Token](token.Plus, "+", token.Start)))
}

func TestRegistered(t *testing.T) {
	f, ok := dialect.Get("ACME")
	require.True(t, ok)

	res, err := f.Parse("1 + !! 5 * 2")
	require.NoError(t, err)
	assert.Equal(t, "(1 + ((!!5) * 2))", res.Text)

	strict, ok := dialect.Get("acme-strict")
	require.True(t, ok)
	_, err = strict.Parse("1 + !")
	assert.True(t, errors.Is(err, lexer.ErrEndOfInput))

	lexemes, err := f.Tokenize("!! 2")
	require.NoError(t, err)
	require.Len(t, lexemes, 3)
	assert.Equal(t, "FACTORIAL", lexemes[0].Kind)
	assert.Equal(t, 2, lexemes[0].Span.End.Offset)
	assert.True(t, lexemes[1].Trivia)
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "FACTORIAL", acme.Factorial.String())
	assert.Equal(t, "POWER", acme.Power.String())
	assert.Equal(t, "ACME?", acme.Token(0).String())
}
