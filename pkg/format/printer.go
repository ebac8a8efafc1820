// Package format renders expression trees as fully parenthesized text and
// as JSON-ready maps.
package format

import (
	"bytes"
	"fmt"
)

// Printer accumulates rendered expression text.
type Printer struct {
	output *bytes.Buffer
}

func newPrinter() *Printer {
	return &Printer{output: &bytes.Buffer{}}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) writef(format string, args ...any) {
	fmt.Fprintf(p.output, format, args...)
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}
