package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// ErrorKind classifies tokenizer failures.
type ErrorKind int

// Tokenizer error kinds.
const (
	UnexpectedChar ErrorKind = iota + 1
	UnterminatedLiteral
	EndOfInput
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "UnexpectedChar"
	case UnterminatedLiteral:
		return "UnterminatedLiteral"
	case EndOfInput:
		return "EndOfInput"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a tokenizer failure with the position it occurred at.
// Char is set for UnexpectedChar only. Raw holds the offending byte when
// the input is not valid UTF-8 at Pos.
type Error struct {
	Kind ErrorKind
	Char rune
	Raw  string
	Pos  token.Position
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case UnexpectedChar:
		if e.Raw != "" {
			msg = fmt.Sprintf("unexpected character '%s'", strings.Trim(strconv.Quote(e.Raw), `"`))
		} else {
			msg = fmt.Sprintf("unexpected character %q", e.Char)
		}
	case UnterminatedLiteral:
		msg = "unterminated literal"
	case EndOfInput:
		msg = "unexpected end of input"
	default:
		msg = e.Kind.String()
	}
	if !e.Pos.IsValid() {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, msg)
}

// Is matches any *Error of the same kind, so the sentinels below work
// with errors.Is regardless of position.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrUnexpectedChar      = &Error{Kind: UnexpectedChar}
	ErrUnterminatedLiteral = &Error{Kind: UnterminatedLiteral}
	ErrEndOfInput          = &Error{Kind: EndOfInput}
)

// UnexpectedCharAt reports a character no rule could start a token with.
func UnexpectedCharAt(ch rune, pos token.Position) *Error {
	return &Error{Kind: UnexpectedChar, Char: ch, Pos: pos}
}

// UnexpectedAt reports the character at the guard's position, which has
// not been consumed. A byte that does not start valid UTF-8 is reported
// as written.
func UnexpectedAt(g *Guard) *Error {
	ch, _ := g.PeekChar()
	err := UnexpectedCharAt(ch, g.Pos())
	if ch == utf8.RuneError {
		rest := g.c.input[g.c.pos.Offset:]
		if _, size := utf8.DecodeRuneInString(rest); size == 1 {
			err.Raw = rest[:1]
		}
	}
	return err
}

// UnterminatedAt reports a string, quoted identifier or comment opened at
// pos and never closed.
func UnterminatedAt(pos token.Position) *Error {
	return &Error{Kind: UnterminatedLiteral, Pos: pos}
}

// EndOfInputAt reports input that ended in the middle of a token.
func EndOfInputAt(pos token.Position) *Error {
	return &Error{Kind: EndOfInput, Pos: pos}
}
