package printer

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

type Align byte

const (
	Left   Align = 0
	Center Align = 1
	Right  Align = 2
)

type Size byte

const (
	Normal Size = 0x00
	Double Size = 0x11
	Wide   Size = 0x10
	Tall   Size = 0x01
)

// DefaultWidth is the character width of 58mm paper.
const DefaultWidth = 32

// Document accumulates an ESC/POS byte stream.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for paper that fits width characters per line.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = DefaultWidth
	}
	d := &Document{width: width}
	d.buf.Write([]byte{esc, '@'})
	return d
}

func (d *Document) Width() int { return d.width }

func (d *Document) Align(a Align) *Document {
	d.buf.Write([]byte{esc, 'a', byte(a)})
	return d
}

func (d *Document) Bold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

func (d *Document) Size(s Size) *Document {
	d.buf.Write([]byte{gs, '!', byte(s)})
	return d
}

// Line writes s and a line feed. Text longer than the paper wraps on the printer.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) Linef(format string, args ...any) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width line of ch.
func (d *Document) Rule(ch byte) *Document {
	return d.Line(strings.Repeat(string(ch), d.width))
}

// Pair prints label on the left and value flush right.
func (d *Document) Pair(label, value string) *Document {
	return d.Line(pad(label, value, d.width))
}

func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lf)
	}
	return d
}

// Cut feeds past the tear bar and performs a partial cut.
func (d *Document) Cut() *Document {
	d.Feed(3)
	d.buf.Write([]byte{gs, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func pad(left, right string, width int) string {
	gap := width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
