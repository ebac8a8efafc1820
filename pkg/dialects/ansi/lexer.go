package ansi

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/leapstack-labs/sqlkit/pkg/dialect"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

var precedence = dialect.PrecedenceTable(dialect.ANSIOperators)

// Lexer is the base tokenizer rule. It is generic over the custom token
// type C of the stack it sits at the bottom of, and never produces or
// inspects custom tokens itself.
type Lexer[C any] struct{}

// Scan reads one token.
func (Lexer[C]) Scan(g *lexer.Guard) (token.Token[C], error) {
	pos := g.Pos()
	ch, ok := g.PeekChar()
	if !ok {
		return token.New[C](token.EOF, "", pos), nil
	}

	switch {
	case isSpace(ch):
		return scanWhile[C](g, token.Whitespace, isSpace), nil
	case ch == '-' && g.HasPrefix("--"):
		return scanWhile[C](g, token.Comment, func(r rune) bool { return r != '\n' }), nil
	case ch == '/' && g.HasPrefix("/*"):
		return scanBlockComment[C](g)
	case isDigit(ch) || (ch == '.' && nextIsDigit(g)):
		return scanNumber[C](g), nil
	case ch == '\'':
		return scanQuoted[C](g, '\'', token.String)
	case ch == '"':
		return scanQuoted[C](g, '"', token.Ident)
	case isIdentStart(ch):
		return scanWord[C](g), nil
	}
	return scanOperator[C](g, ch)
}

// Precedence ranks built-in operators. Custom tokens are not ranked here;
// the dialect that owns them does that.
func (Lexer[C]) Precedence(tok token.Token[C]) int {
	if tok.Kind == token.Custom {
		return 0
	}
	return precedence[tok.Kind]
}

func scanWhile[C any](g *lexer.Guard, kind token.Kind, pred func(rune) bool) token.Token[C] {
	pos := g.Pos()
	m := g.Mark()
	for ch, ok := g.PeekChar(); ok && pred(ch); ch, ok = g.PeekChar() {
		g.NextChar()
	}
	return token.New[C](kind, g.Since(m), pos)
}

func scanBlockComment[C any](g *lexer.Guard) (token.Token[C], error) {
	pos := g.Pos()
	m := g.Mark()
	g.Skip(2)
	for !g.HasPrefix("*/") {
		if _, ok := g.NextChar(); !ok {
			return token.Token[C]{}, lexer.UnterminatedAt(pos)
		}
	}
	g.Skip(2)
	return token.New[C](token.Comment, g.Since(m), pos), nil
}

// scanNumber reads 12, 1.5, .5, 1e10 and 2.5E-3.
func scanNumber[C any](g *lexer.Guard) token.Token[C] {
	pos := g.Pos()
	m := g.Mark()
	skipDigits(g)
	if ch, _ := g.PeekChar(); ch == '.' && nextIsDigit(g) {
		g.NextChar()
		skipDigits(g)
	}
	if ch, _ := g.PeekChar(); ch == 'e' || ch == 'E' {
		sign, _ := g.Lookahead(1)
		switch {
		case isDigit(sign):
			g.NextChar()
			skipDigits(g)
		case sign == '+' || sign == '-':
			if d, _ := g.Lookahead(2); isDigit(d) {
				g.Skip(2)
				skipDigits(g)
			}
		}
	}
	return token.New[C](token.Number, g.Since(m), pos)
}

// scanQuoted reads a literal delimited by quote, where a doubled quote
// stands for itself. The token literal is the unescaped body.
func scanQuoted[C any](g *lexer.Guard, quote rune, kind token.Kind) (token.Token[C], error) {
	pos := g.Pos()
	g.NextChar() // opening quote

	var sb strings.Builder
	for {
		ch, ok := g.NextChar()
		if !ok {
			return token.Token[C]{}, lexer.UnterminatedAt(pos)
		}
		if ch == quote {
			if next, _ := g.PeekChar(); next == quote {
				g.NextChar()
				sb.WriteRune(quote)
				continue
			}
			return token.New[C](kind, sb.String(), pos), nil
		}
		sb.WriteRune(ch)
	}
}

func scanWord[C any](g *lexer.Guard) token.Token[C] {
	tok := scanWhile[C](g, token.Ident, isIdentPart)
	if kind, ok := token.LookupKeyword(cases.Fold().String(tok.Literal)); ok {
		tok.Kind = kind
	}
	return tok
}

func scanOperator[C any](g *lexer.Guard, ch rune) (token.Token[C], error) {
	pos := g.Pos()
	next, _ := g.Lookahead(1)

	emit := func(kind token.Kind, width int) (token.Token[C], error) {
		m := g.Mark()
		g.Skip(width)
		return token.New[C](kind, g.Since(m), pos), nil
	}

	switch ch {
	case '+':
		return emit(token.Plus, 1)
	case '-':
		return emit(token.Minus, 1)
	case '*':
		return emit(token.Star, 1)
	case '/':
		return emit(token.Slash, 1)
	case '%':
		return emit(token.Percent, 1)
	case '=':
		return emit(token.Eq, 1)
	case '(':
		return emit(token.LParen, 1)
	case ')':
		return emit(token.RParen, 1)
	case ',':
		return emit(token.Comma, 1)
	case '.':
		return emit(token.Dot, 1)
	case ';':
		return emit(token.Semicolon, 1)
	case '|':
		if next == '|' {
			return emit(token.Concat, 2)
		}
	case '!':
		if next == '=' {
			return emit(token.Neq, 2)
		}
		return emit(token.Not, 1)
	case '<':
		switch next {
		case '=':
			return emit(token.LtEq, 2)
		case '>':
			return emit(token.Neq, 2)
		}
		return emit(token.Lt, 1)
	case '>':
		if next == '=' {
			return emit(token.GtEq, 2)
		}
		return emit(token.Gt, 1)
	}
	return token.Token[C]{}, lexer.UnexpectedAt(g)
}

func skipDigits(g *lexer.Guard) {
	for ch, ok := g.PeekChar(); ok && isDigit(ch); ch, ok = g.PeekChar() {
		g.NextChar()
	}
}

func nextIsDigit(g *lexer.Guard) bool {
	ch, ok := g.Lookahead(1)
	return ok && isDigit(ch)
}

func isSpace(ch rune) bool { return unicode.IsSpace(ch) }

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch rune) bool { return ch == '_' || unicode.IsLetter(ch) }

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch) || ch == '$'
}
