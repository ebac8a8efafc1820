package acme

import (
	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/spi"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// PrecedencePower ranks ** just above multiplication.
const PrecedencePower = spi.PrecedenceMultiply + 1

type config struct {
	strict bool
}

// Option configures the acme lexer.
type Option func(*config)

// Strict makes a single ! an error instead of handing it back to the base
// lexer: UnexpectedChar at the character that follows it, or EndOfInput
// when nothing does.
func Strict() Option {
	return func(c *config) {
		c.strict = true
	}
}

// FactorialLexer recognizes !! and delegates everything else to its base.
type FactorialLexer struct {
	base   lexer.Rule[Token]
	strict bool
}

// NewFactorialLexer wraps base.
func NewFactorialLexer(base lexer.Rule[Token], opts ...Option) *FactorialLexer {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FactorialLexer{base: base, strict: cfg.strict}
}

// Scan implements lexer.Rule.
func (l *FactorialLexer) Scan(g *lexer.Guard) (token.Token[Token], error) {
	if ch, ok := g.PeekChar(); !ok || ch != '!' {
		return l.base.Scan(g)
	}

	pos := g.Pos()
	m := g.Mark()
	g.NextChar() // first !
	next, ok := g.PeekChar()
	if ok && next == '!' {
		g.NextChar()
		return token.NewCustom(Factorial, "!!", pos), nil
	}

	if l.strict {
		if !ok {
			return token.Token[Token]{}, lexer.EndOfInputAt(g.Pos())
		}
		return token.Token[Token]{}, lexer.UnexpectedAt(g)
	}

	// Not ours: let the base see the ! again, so it can produce ! or !=.
	g.Reset(m)
	return l.base.Scan(g)
}

// Precedence implements lexer.Rule. Factorial is prefix only.
func (l *FactorialLexer) Precedence(tok token.Token[Token]) int {
	return l.base.Precedence(tok)
}

// PowerLexer recognizes ** and delegates everything else to its base.
type PowerLexer struct {
	base lexer.Rule[Token]
}

// NewPowerLexer wraps base.
func NewPowerLexer(base lexer.Rule[Token]) *PowerLexer {
	return &PowerLexer{base: base}
}

// Scan implements lexer.Rule.
func (l *PowerLexer) Scan(g *lexer.Guard) (token.Token[Token], error) {
	if !g.HasPrefix("**") {
		return l.base.Scan(g)
	}
	pos := g.Pos()
	g.Skip(2)
	return token.NewCustom(Power, "**", pos), nil
}

// Precedence implements lexer.Rule.
func (l *PowerLexer) Precedence(tok token.Token[Token]) int {
	if tok.Kind == token.Custom && tok.Custom == Power {
		return PrecedencePower
	}
	return l.base.Precedence(tok)
}
