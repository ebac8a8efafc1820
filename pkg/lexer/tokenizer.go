package lexer

import "github.com/leapstack-labs/sqlkit/pkg/token"

// Rule is one layer of a tokenizer stack.
//
// Scan reads one token from the guarded cursor. At end of input it returns
// an EOF token. A rule that wraps another passes the same guard to the
// wrapped rule's Scan; rules never acquire the cursor themselves.
//
// Precedence returns the infix binding strength of tok, or 0 when tok is
// not an infix operator.
type Rule[C any] interface {
	Scan(g *Guard) (token.Token[C], error)
	Precedence(tok token.Token[C]) int
}

// Tokenizer drives the outermost Rule of a stack over a shared Cursor.
// Each method holds the cursor for exactly the duration of the call.
type Tokenizer[C any] struct {
	cursor *Cursor
	rule   Rule[C]
}

// New creates a Tokenizer over cursor. Several tokenizers may share one
// cursor; they observe each other's consumption.
func New[C any](cursor *Cursor, rule Rule[C]) *Tokenizer[C] {
	return &Tokenizer[C]{cursor: cursor, rule: rule}
}

// NewString is shorthand for New(NewCursor(input), rule).
func NewString[C any](input string, rule Rule[C]) *Tokenizer[C] {
	return New(NewCursor(input), rule)
}

// Cursor returns the cursor this tokenizer scans.
func (t *Tokenizer[C]) Cursor() *Cursor {
	return t.cursor
}

// PeekChar returns the next raw character without consuming it.
func (t *Tokenizer[C]) PeekChar() (rune, bool) {
	g := t.cursor.Acquire()
	defer g.Release()
	return g.PeekChar()
}

// NextChar consumes and returns the next raw character.
func (t *Tokenizer[C]) NextChar() (rune, bool) {
	g := t.cursor.Acquire()
	defer g.Release()
	return g.NextChar()
}

// PeekToken scans the next token and rewinds, so two consecutive calls
// return the same result.
func (t *Tokenizer[C]) PeekToken() (token.Token[C], error) {
	g := t.cursor.Acquire()
	defer g.Release()

	m := g.Mark()
	tok, err := t.rule.Scan(g)
	g.Reset(m)
	return tok, err
}

// NextToken consumes one token. It returns an EOF token once input is
// exhausted and a *Error when the input cannot be tokenized.
func (t *Tokenizer[C]) NextToken() (token.Token[C], error) {
	g := t.cursor.Acquire()
	defer g.Release()
	return t.rule.Scan(g)
}

// PeekSignificant consumes whitespace and comments, then returns the next
// token without consuming it. Both happen under one hold of the cursor.
func (t *Tokenizer[C]) PeekSignificant() (token.Token[C], error) {
	g := t.cursor.Acquire()
	defer g.Release()

	for {
		m := g.Mark()
		tok, err := t.rule.Scan(g)
		if err != nil || !token.IsTrivia(tok.Kind) {
			g.Reset(m)
			return tok, err
		}
	}
}

// NextSignificant consumes whitespace and comments and the token after
// them under one hold of the cursor.
func (t *Tokenizer[C]) NextSignificant() (token.Token[C], error) {
	g := t.cursor.Acquire()
	defer g.Release()

	for {
		tok, err := t.rule.Scan(g)
		if err != nil || !token.IsTrivia(tok.Kind) {
			return tok, err
		}
	}
}

// Precedence returns the infix binding strength of tok.
func (t *Tokenizer[C]) Precedence(tok token.Token[C]) int {
	return t.rule.Precedence(tok)
}

// Pos returns the position of the next unconsumed character.
func (t *Tokenizer[C]) Pos() token.Position {
	g := t.cursor.Acquire()
	defer g.Release()
	return g.Pos()
}

// All drains t and returns every token before EOF, trivia included.
func All[C any](t *Tokenizer[C]) ([]token.Token[C], error) {
	var toks []token.Token[C]
	for {
		tok, err := t.NextToken()
		if err != nil {
			return toks, err
		}
		if tok.IsEOF() {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
