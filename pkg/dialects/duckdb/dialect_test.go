package duckdb_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/dialects/duckdb"
	"github.com/leapstack-labs/sqlkit/pkg/format"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/parser"
)

func parse(input string) (core.Expr[duckdb.Expr], error) {
	stack := duckdb.Stack()
	return parser.New(lexer.NewString(input, stack.Lexer), stack.Parser).Parse()
}

func TestDuckDB_Expressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a::int", "(a::int)"},
		{"a::int::varchar", "((a::int)::varchar)"},
		{"-a::int", "(-(a::int))"},
		{"'1.5'::decimal(10, 2) + 1", "(('1.5'::decimal(10, 2)) + 1)"},
		{"7 // 2 * 3", "((7 // 2) * 3)"},
		{"1 //* c */ 2", "(1 / 2)"},
		{"1 // 2 -- c", "(1 // 2)"},
		{"1 + 2 ** 3", "(1 + (2 ** 3))"},
		{"name ILIKE 'a%' AND x", "((name ILIKE 'a%') AND x)"},
		{"name ilike 'a%'", "(name ilike 'a%')"},
		{`"ilike" = 1`, `(ilike = 1)`},
		{"[1, 2 + 3, [4]]", "[1, (2 + 3), [4]]"},
		{"[]", "[]"},
		{"f([a], b)", "f([a], b)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, format.Expr(expr))
		})
	}
}

func TestDuckDB_Tree(t *testing.T) {
	expr, err := parse("x::int")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"type": "cast",
		"to":   "int",
		"expr": map[string]any{"type": "ident", "name": "x"},
	}, format.Tree(expr))
}

func TestDuckDB_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  parser.ErrorKind
	}{
		{"cast without type", "a::", parser.EndOfInput},
		{"cast to number", "a::1", parser.UnexpectedToken},
		{"bad type params", "a::decimal(x)", parser.UnexpectedToken},
		{"unclosed list", "[1, 2", parser.EndOfInput},
		{"stray bracket", "]", parser.UnexpectedToken},
		{"list separator", "[1 2]", parser.UnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestDuckDB_Registered(t *testing.T) {
	f, err := dialect.Lookup("DuckDB")
	require.NoError(t, err)

	res, err := f.Parse("x // 2")
	require.NoError(t, err)
	assert.Equal(t, "(x // 2)", res.Text)
	assert.Equal(t, "duckdb", res.Dialect)
}

func TestDuckDB_Builder(t *testing.T) {
	assert.Equal(t, []string{"ilike"}, duckdb.DuckDB.Keywords())
	assert.Equal(t, 5, len(duckdb.DuckDB.Symbols()))
	assert.Equal(t, 8, duckdb.DuckDB.Precedence(duckdb.DColon))
	assert.Equal(t, "DCOLON", duckdb.DColon.String())
	assert.Equal(t, "DUCKDB?", duckdb.Token(99).String())
}
