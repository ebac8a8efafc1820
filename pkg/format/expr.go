package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Expr renders e with every compound sub-expression in parentheses, so the
// grouping the parser chose is explicit: 1 + 2 * 3 renders as
// (1 + (2 * 3)). Custom nodes render through fmt.Stringer.
func Expr[X any](e core.Expr[X]) string {
	p := newPrinter()
	formatExpr(p, e)
	return p.String()
}

func formatExpr[X any](p *Printer, e core.Expr[X]) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *core.Literal[X]:
		p.formatLiteral(expr.Kind, expr.Value)
	case *core.Ident[X]:
		p.formatIdent(expr.Parts)
	case *core.Unary[X]:
		p.write("(")
		p.write(expr.Operator)
		if expr.Op == token.Not && expr.Operator != "!" {
			p.space()
		}
		formatExpr(p, expr.Operand)
		p.write(")")
	case *core.Binary[X]:
		p.write("(")
		formatExpr(p, expr.Left)
		p.space()
		p.write(expr.Operator)
		p.space()
		formatExpr(p, expr.Right)
		p.write(")")
	case *core.Call[X]:
		p.write(expr.Name)
		p.write("(")
		if expr.Star {
			p.write("*")
		}
		for i, arg := range expr.Args {
			if i > 0 {
				p.write(", ")
			}
			formatExpr(p, arg)
		}
		p.write(")")
	case *core.Custom[X]:
		if s, ok := any(expr.Value).(fmt.Stringer); ok {
			p.write(s.String())
		} else {
			p.writef("%v", expr.Value)
		}
	default:
		p.writef("%v", e)
	}
}

func (p *Printer) formatLiteral(kind core.LiteralKind, value string) {
	switch kind {
	case core.LiteralString:
		p.write("'" + strings.ReplaceAll(value, "'", "''") + "'")
	case core.LiteralBool, core.LiteralNull:
		p.write(strings.ToUpper(value))
	default:
		p.write(value)
	}
}

func (p *Printer) formatIdent(parts []string) {
	for i, part := range parts {
		if i > 0 {
			p.write(".")
		}
		p.write(QuoteIdentifierIfNeeded(part))
	}
}

// QuoteIdentifierIfNeeded wraps name in double quotes unless it lexes back
// as the same plain identifier.
func QuoteIdentifierIfNeeded(name string) string {
	if isPlainIdent(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isPlainIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '$'):
		default:
			return false
		}
	}
	_, keyword := token.LookupKeyword(strings.ToLower(name))
	return !keyword
}
