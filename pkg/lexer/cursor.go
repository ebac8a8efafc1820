// Package lexer provides the shared scanning state and the tokenizer driver
// that composable lexer rules run on.
//
// A Cursor holds the input and the current position. Every rule layer of a
// dialect stack scans the same Cursor; none of them copies it. The Cursor is
// guarded by a single mutex. A Tokenizer acquires it once per call and hands
// the resulting Guard down through the rule chain, so rules never lock.
package lexer

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// Cursor is the scanning state shared by every layer of a tokenizer stack.
type Cursor struct {
	mu    sync.Mutex
	input string
	pos   token.Position
}

// NewCursor creates a Cursor positioned at the start of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input, pos: token.Start}
}

// Input returns the full source text.
func (c *Cursor) Input() string {
	return c.input
}

// Acquire locks the cursor and returns the guard for one operation.
// The caller must Release it.
func (c *Cursor) Acquire() *Guard {
	c.mu.Lock()
	return &Guard{c: c}
}

// Mark is a saved cursor position.
type Mark struct {
	pos token.Position
}

// Pos returns the position the mark was taken at.
func (m Mark) Pos() token.Position {
	return m.pos
}

// Guard is exclusive access to a Cursor for the duration of one call.
type Guard struct {
	c        *Cursor
	released bool
}

// PeekChar returns the next character without consuming it.
// It reports false at end of input.
func (g *Guard) PeekChar() (rune, bool) {
	return g.Lookahead(0)
}

// Lookahead returns the character n positions past the next one without
// consuming anything. Lookahead(0) is PeekChar.
func (g *Guard) Lookahead(n int) (rune, bool) {
	rest := g.c.input[g.c.pos.Offset:]
	for {
		if rest == "" {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(rest)
		if n == 0 {
			return r, true
		}
		rest = rest[size:]
		n--
	}
}

// NextChar consumes one character and advances the position.
// It reports false at end of input.
func (g *Guard) NextChar() (rune, bool) {
	if g.c.pos.Offset >= len(g.c.input) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(g.c.input[g.c.pos.Offset:])
	g.c.pos = g.c.pos.Advance(r, size)
	return r, true
}

// Skip consumes n characters, stopping early at end of input.
func (g *Guard) Skip(n int) {
	for ; n > 0; n-- {
		if _, ok := g.NextChar(); !ok {
			return
		}
	}
}

// AtEOF reports whether all input has been consumed.
func (g *Guard) AtEOF() bool {
	return g.c.pos.Offset >= len(g.c.input)
}

// Pos returns the position of the next character.
func (g *Guard) Pos() token.Position {
	return g.c.pos
}

// HasPrefix reports whether the unconsumed input starts with s.
func (g *Guard) HasPrefix(s string) bool {
	return strings.HasPrefix(g.c.input[g.c.pos.Offset:], s)
}

// Mark saves the current position for a later Reset.
func (g *Guard) Mark() Mark {
	return Mark{pos: g.c.pos}
}

// Reset rewinds the cursor to m.
func (g *Guard) Reset(m Mark) {
	g.c.pos = m.pos
}

// Since returns the input consumed after m.
func (g *Guard) Since(m Mark) string {
	return g.c.input[m.pos.Offset:g.c.pos.Offset]
}

// Release unlocks the cursor. Releasing twice is a no-op.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.c.mu.Unlock()
}
