package token

import "fmt"

// Position represents a location in the source text.
type Position struct {
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number, counted in characters
	Offset int `json:"offset"` // 0-based byte offset
}

// Start is the position of the first character of any input.
var Start = Position{Line: 1, Column: 1}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Advance returns the position that follows consuming ch, which occupies
// size bytes of input.
func (p Position) Advance(ch rune, size int) Position {
	if ch == '\n' {
		return Position{Line: p.Line + 1, Column: 1, Offset: p.Offset + size}
	}
	return Position{Line: p.Line, Column: p.Column + 1, Offset: p.Offset + size}
}

// String formats the position the way errors report it.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Span represents a range in source text.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"` // exclusive
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}
