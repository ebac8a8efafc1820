// Package dialect builds SQL dialect layers and keeps the registry of
// dialect front-ends.
//
// A dialect is a pair of layers wrapped around a base: a lexer.Rule that
// recognizes the dialect's symbols and keywords, and a spi.Layer that parses
// the dialect's operators. Anything a layer does not recognize is forwarded
// to the base unchanged. Concrete dialects are registered from
// pkg/dialects/*/ packages.
package dialect

import (
	"slices"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/leapstack-labs/sqlkit/pkg/core"
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

type symbolDef[C any] struct {
	text   string
	custom C
}

// Dialect is a table-driven dialect layer. C is the custom token type and
// X the custom expression type of the stack it belongs to.
type Dialect[C comparable, X any] struct {
	Name string

	symbols        []symbolDef[C]                // longest first
	keywords       map[string]C                  // folded keyword -> token
	precedence     map[C]int                     // infix operator ranks
	infixHandlers  map[C]spi.InfixHandler[C, X]  // optional custom infix parsing
	prefixHandlers map[C]spi.PrefixHandler[C, X] // prefix expression handlers
}

// Symbols returns the registered operator symbols, longest first.
func (d *Dialect[C, X]) Symbols() []string {
	out := make([]string, len(d.symbols))
	for i, s := range d.symbols {
		out[i] = s.text
	}
	return out
}

// Keywords returns the registered keywords (sorted).
func (d *Dialect[C, X]) Keywords() []string {
	out := make([]string, 0, len(d.keywords))
	for kw := range d.keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Precedence returns the infix rank of custom token c, 0 if the dialect
// does not rank it.
func (d *Dialect[C, X]) Precedence(c C) int {
	return d.precedence[c]
}

// Lexer wraps base with this dialect's symbols and keywords.
func (d *Dialect[C, X]) Lexer(base lexer.Rule[C]) lexer.Rule[C] {
	return &rule[C, X]{d: d, base: base}
}

// Parser wraps base with this dialect's prefix and infix handlers.
func (d *Dialect[C, X]) Parser(base spi.Layer[C, X]) spi.Layer[C, X] {
	return &layer[C, X]{d: d, base: base}
}

// ---------- Lexer layer ----------

type rule[C comparable, X any] struct {
	d    *Dialect[C, X]
	base lexer.Rule[C]
}

// commentOpeners start base comments. Comments take priority over
// dialect symbols: a symbol never claims input overlapping an opener, so
// with a // symbol, 1 //* c */ 2 still lexes as 1 / 2.
var commentOpeners = []string{"--", "/*"}

func overlapsComment(g *lexer.Guard, symbol string) bool {
	for i := range len(symbol) {
		for _, open := range commentOpeners {
			if g.HasPrefix(symbol[:i] + open) {
				return true
			}
		}
	}
	return false
}

func (r *rule[C, X]) Scan(g *lexer.Guard) (token.Token[C], error) {
	// Check dialect-specific symbols first (longest match)
	for _, s := range r.d.symbols {
		if g.HasPrefix(s.text) && !overlapsComment(g, s.text) {
			pos := g.Pos()
			g.Skip(utf8.RuneCountInString(s.text))
			return token.NewCustom(s.custom, s.text, pos), nil
		}
	}

	m := g.Mark()
	tok, err := r.base.Scan(g)
	if err != nil || tok.Kind != token.Ident || len(r.d.keywords) == 0 {
		return tok, err
	}

	// Quoted identifiers are never keywords.
	if raw := g.Since(m); raw != "" && raw[0] == '"' {
		return tok, nil
	}
	if c, ok := r.d.keywords[cases.Fold().String(tok.Literal)]; ok {
		return token.NewCustom(c, tok.Literal, tok.Pos), nil
	}
	return tok, nil
}

func (r *rule[C, X]) Precedence(tok token.Token[C]) int {
	if tok.Kind == token.Custom {
		if prec, ok := r.d.precedence[tok.Custom]; ok {
			return prec
		}
	}
	return r.base.Precedence(tok)
}

// ---------- Parser layer ----------

type layer[C comparable, X any] struct {
	d    *Dialect[C, X]
	base spi.Layer[C, X]
}

func (l *layer[C, X]) ParsePrefix(p spi.Ops[C, X]) (core.Expr[X], error) {
	tok, err := p.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.Custom {
		if handler, ok := l.d.prefixHandlers[tok.Custom]; ok {
			if _, err := p.Next(); err != nil {
				return nil, err
			}
			return handler(p, tok)
		}
	}
	return l.base.ParsePrefix(p)
}

func (l *layer[C, X]) ParseInfix(p spi.Ops[C, X], left core.Expr[X], minPrec int) (core.Expr[X], bool, error) {
	tok, err := p.Peek()
	if err != nil {
		return nil, false, err
	}
	if tok.Kind == token.Custom {
		if handler, ok := l.d.infixHandlers[tok.Custom]; ok {
			prec := p.Precedence(tok)
			if prec == spi.PrecedenceNone || prec < minPrec {
				return left, false, nil
			}
			if _, err := p.Next(); err != nil {
				return nil, false, err
			}
			expr, err := handler(p, left, tok)
			if err != nil {
				return nil, false, err
			}
			return expr, true, nil
		}
	}
	return l.base.ParseInfix(p, left, minPrec)
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder[C comparable, X any] struct {
	dialect *Dialect[C, X]
}

// New creates a new dialect builder with the given name.
func New[C comparable, X any](name string) *Builder[C, X] {
	return &Builder[C, X]{
		dialect: &Dialect[C, X]{
			Name:           name,
			keywords:       make(map[string]C),
			precedence:     make(map[C]int),
			infixHandlers:  make(map[C]spi.InfixHandler[C, X]),
			prefixHandlers: make(map[C]spi.PrefixHandler[C, X]),
		},
	}
}

// Symbol registers a custom operator symbol for the lexer.
func (b *Builder[C, X]) Symbol(text string, c C) *Builder[C, X] {
	b.dialect.symbols = slices.DeleteFunc(b.dialect.symbols, func(s symbolDef[C]) bool {
		return s.text == text
	})
	b.dialect.symbols = append(b.dialect.symbols, symbolDef[C]{text: text, custom: c})
	return b
}

// Keyword registers a word the lexer turns into custom token c.
// Matching is case-insensitive.
func (b *Builder[C, X]) Keyword(word string, c C) *Builder[C, X] {
	b.dialect.keywords[cases.Fold().String(word)] = c
	return b
}

// Infix ranks custom token c as an infix operator. Without a handler the
// base layer parses it as a binary expression.
func (b *Builder[C, X]) Infix(c C, prec int) *Builder[C, X] {
	b.dialect.precedence[c] = prec
	return b
}

// InfixWithHandler ranks c and parses it with handler.
func (b *Builder[C, X]) InfixWithHandler(c C, prec int, handler spi.InfixHandler[C, X]) *Builder[C, X] {
	b.dialect.precedence[c] = prec
	b.dialect.infixHandlers[c] = handler
	return b
}

// Prefix parses expressions introduced by c with handler.
func (b *Builder[C, X]) Prefix(c C, handler spi.PrefixHandler[C, X]) *Builder[C, X] {
	b.dialect.prefixHandlers[c] = handler
	return b
}

// Build returns the constructed dialect.
func (b *Builder[C, X]) Build() *Dialect[C, X] {
	sort.SliceStable(b.dialect.symbols, func(i, j int) bool {
		return len(b.dialect.symbols[i].text) > len(b.dialect.symbols[j].text)
	})
	return b.dialect
}
