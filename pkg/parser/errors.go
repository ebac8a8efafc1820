package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlkit/pkg/lexer"
	"github.com/leapstack-labs/sqlkit/pkg/token"
)

// ErrorKind classifies parse failures.
//
// ErrorKind implements error so it can be the target of errors.Is:
//
//	errors.Is(err, parser.EndOfInput)
type ErrorKind int

// Parser error kinds.
const (
	UnexpectedToken ErrorKind = iota + 1
	TokenizerFailure
	EndOfInput
)

func (k ErrorKind) Error() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case TokenizerFailure:
		return "tokenizer failure"
	case EndOfInput:
		return "unexpected end of input"
	default:
		return fmt.Sprintf("parse error kind %d", int(k))
	}
}

// ErrMaxDepth is wrapped by the UnexpectedToken error returned when an
// expression nests deeper than the configured limit.
var ErrMaxDepth = errors.New("maximum expression depth exceeded")

// Error is a parse failure. Token is set for UnexpectedToken; Err holds the
// tokenizer error for TokenizerFailure.
type Error[C any] struct {
	Kind  ErrorKind
	Token token.Token[C]
	Pos   token.Position
	Err   error
}

func (e *Error[C]) Error() string {
	switch e.Kind {
	case TokenizerFailure:
		if e.Err != nil {
			return e.Err.Error()
		}
	case UnexpectedToken:
		msg := fmt.Sprintf("%s: unexpected token %s", e.Pos, describe(e.Token))
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Kind.Error())
}

// Unwrap returns the underlying tokenizer error, if any.
func (e *Error[C]) Unwrap() error { return e.Err }

// Is matches the error's kind.
func (e *Error[C]) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// ErrorKind returns the kind. It lets KindOf inspect errors without knowing C.
func (e *Error[C]) ErrorKind() ErrorKind { return e.Kind }

// KindOf reports the parser error kind in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var k interface{ ErrorKind() ErrorKind }
	if errors.As(err, &k) {
		return k.ErrorKind(), true
	}
	return 0, false
}

func describe[C any](tok token.Token[C]) string {
	if tok.Kind == token.Custom {
		return fmt.Sprintf("%q", tok.Literal)
	}
	return tok.String()
}

func unexpected[C any](tok token.Token[C]) *Error[C] {
	if tok.IsEOF() {
		return &Error[C]{Kind: EndOfInput, Token: tok, Pos: tok.Pos}
	}
	return &Error[C]{Kind: UnexpectedToken, Token: tok, Pos: tok.Pos}
}

func tokenizerFailure[C any](err error) error {
	var perr *Error[C]
	if errors.As(err, &perr) {
		return err
	}
	wrapped := &Error[C]{Kind: TokenizerFailure, Err: err}
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		wrapped.Pos = lerr.Pos
	}
	return wrapped
}
