package ansi_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlkit/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

type tok = token.Token[struct{}]

func tokenize(t *testing.T, input string) []tok {
	t.Helper()
	toks, err := lexer.All(lexer.NewString[struct{}](input, ansi.Lexer[struct{}]{}))
	require.NoError(t, err)

	var out []tok
	for _, tk := range toks {
		if !token.IsTrivia(tk.Kind) {
			out = append(out, tk)
		}
	}
	return out
}

func kinds(toks []tok) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"arithmetic", "1 + 2 * 3", []token.Kind{token.Number, token.Plus, token.Number, token.Star, token.Number}},
		{"comparison", "a <= b <> c != d >= e", []token.Kind{
			token.Ident, token.LtEq, token.Ident, token.Neq, token.Ident, token.Neq, token.Ident, token.GtEq, token.Ident,
		}},
		{"bang", "! 5", []token.Kind{token.Not, token.Number}},
		{"concat", "'a' || 'b'", []token.Kind{token.String, token.Concat, token.String}},
		{"keywords any case", "a AnD b oR NOT c LIKE d", []token.Kind{
			token.Ident, token.And, token.Ident, token.Or, token.Not, token.Ident, token.Like, token.Ident,
		}},
		{"literals", "true FALSE null", []token.Kind{token.True, token.False, token.Null}},
		{"call", "count(*)", []token.Kind{token.Ident, token.LParen, token.Star, token.RParen}},
		{"qualified", "t.col", []token.Kind{token.Ident, token.Dot, token.Ident}},
		{"punctuation", "(a, b);", []token.Kind{token.LParen, token.Ident, token.Comma, token.Ident, token.RParen, token.Semicolon}},
		{"modulo and slash", "a % b / c", []token.Kind{token.Ident, token.Percent, token.Ident, token.Slash, token.Ident}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(tokenize(t, tt.input)))
		})
	}
}

func TestLexer_Numbers(t *testing.T) {
	for _, input := range []string{"12", "1.5", ".5", "1e10", "2.5E-3", "7e+2"} {
		t.Run(input, func(t *testing.T) {
			toks := tokenize(t, input)
			require.Len(t, toks, 1)
			assert.Equal(t, token.Number, toks[0].Kind)
			assert.Equal(t, input, toks[0].Literal)
		})
	}

	// A trailing exponent marker without digits is not part of the number.
	toks := tokenize(t, "1e")
	assert.Equal(t, []token.Kind{token.Number, token.Ident}, kinds(toks))
}

func TestLexer_QuotedLiterals(t *testing.T) {
	toks := tokenize(t, `'it''s' "my ""col"""`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, "it's", toks[0].Literal)
	assert.Equal(t, token.Ident, toks[1].Kind)
	assert.Equal(t, `my "col"`, toks[1].Literal)
}

func TestLexer_UnicodeIdentifiers(t *testing.T) {
	toks := tokenize(t, "straße + ÉTÉ")
	require.Len(t, toks, 3)
	assert.Equal(t, "straße", toks[0].Literal)
	assert.Equal(t, token.Position{Line: 1, Column: 10, Offset: 10}, toks[2].Pos)
}

func TestLexer_Trivia(t *testing.T) {
	toks, err := lexer.All(lexer.NewString[struct{}]("a -- note\n/* block */ b", ansi.Lexer[struct{}]{}))
	require.NoError(t, err)

	assert.Equal(t, []token.Kind{
		token.Ident, token.Whitespace, token.Comment, token.Whitespace, token.Comment, token.Whitespace, token.Ident,
	}, kinds(toks))
	assert.Equal(t, "-- note", toks[2].Literal)
	assert.Equal(t, "/* block */", toks[4].Literal)
	assert.Equal(t, token.Position{Line: 2, Column: 13, Offset: 22}, toks[6].Pos)
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
		pos   token.Position
	}{
		{"unknown char", "1 ? 2", lexer.ErrUnexpectedChar, token.Position{Line: 1, Column: 3, Offset: 2}},
		{"lone pipe", "a | b", lexer.ErrUnexpectedChar, token.Position{Line: 1, Column: 3, Offset: 2}},
		{"unterminated string", "x = 'abc", lexer.ErrUnterminatedLiteral, token.Position{Line: 1, Column: 5, Offset: 4}},
		{"unterminated ident", `"abc`, lexer.ErrUnterminatedLiteral, token.Position{Line: 1, Column: 1, Offset: 0}},
		{"unterminated comment", "1 /* x", lexer.ErrUnterminatedLiteral, token.Position{Line: 1, Column: 3, Offset: 2}},
		{"invalid utf-8", "a + \xff", lexer.ErrUnexpectedChar, token.Position{Line: 1, Column: 5, Offset: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lexer.All(lexer.NewString[struct{}](tt.input, ansi.Lexer[struct{}]{}))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var lexErr *lexer.Error
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.pos, lexErr.Pos)
		})
	}
}

func TestLexer_InvalidUTF8(t *testing.T) {
	_, err := lexer.All(lexer.NewString[struct{}]("1 + \xff", ansi.Lexer[struct{}]{}))
	require.Error(t, err)
	assert.Equal(t, `line 1, column 5: unexpected character '\xff'`, err.Error())

	var lexErr *lexer.Error
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, "\xff", lexErr.Raw)

	// A literal replacement character is valid input and reported as such.
	_, err = lexer.All(lexer.NewString[struct{}]("1 + \ufffd", ansi.Lexer[struct{}]{}))
	require.Error(t, err)
	assert.Equal(t, "line 1, column 5: unexpected character '\ufffd'", err.Error())
}

func TestLexer_Precedence(t *testing.T) {
	rule := ansi.Lexer[struct{}]{}
	rank := func(kind token.Kind) int {
		return rule.Precedence(token.New[struct{}](kind, "", token.Start))
	}

	assert.Equal(t, spi.PrecedenceOr, rank(token.Or))
	assert.Equal(t, spi.PrecedenceAnd, rank(token.And))
	assert.Equal(t, spi.PrecedenceComparison, rank(token.Eq))
	assert.Equal(t, spi.PrecedenceComparison, rank(token.Like))
	assert.Equal(t, spi.PrecedenceAddition, rank(token.Concat))
	assert.Equal(t, spi.PrecedenceMultiply, rank(token.Percent))
	assert.Equal(t, spi.PrecedenceNone, rank(token.Not))
	assert.Equal(t, spi.PrecedenceNone, rank(token.Number))
	assert.Equal(t, spi.PrecedenceNone, rank(token.Custom))
}
