// Package fastcolor writes fixed-width, optionally coloured, terminal columns
// without allocating per cell.
package fastcolor

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a terminal text attribute.
type Color int

const (
	Reset Color = iota
	Bold
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgCyan
	numColors
)

var codes = [numColors]string{
	Reset:    "\x1b[0m",
	Bold:     "\x1b[1m",
	FgRed:    "\x1b[31m",
	FgGreen:  "\x1b[32m",
	FgYellow: "\x1b[33m",
	FgBlue:   "\x1b[34m",
	FgCyan:   "\x1b[36m",
}

var enabled = true

// SetEnabled turns escape sequences on or off for every Color.
func SetEnabled(on bool) {
	enabled = on
}

// Enabled reports whether escape sequences are written.
func Enabled() bool {
	return enabled
}

// SetHex replaces the foreground of c with the 24-bit colour hex ("#rrggbb").
func SetHex(c Color, hex string) error {
	if c <= Bold || c >= numColors {
		return fmt.Errorf("fastcolor: color %d cannot be replaced", c)
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("fastcolor: %w", err)
	}
	r, g, b := col.RGB255()
	codes[c] = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	return nil
}

var spaces = strings.Repeat(" ", 256)

func pad(w io.StringWriter, n int) {
	for n > len(spaces) {
		w.WriteString(spaces)
		n -= len(spaces)
	}
	w.WriteString(spaces[:n])
}

// WriteString writes s in color c.
func (c Color) WriteString(w io.StringWriter, s string) {
	if !enabled || c == Reset {
		w.WriteString(s)
		return
	}
	w.WriteString(codes[c])
	w.WriteString(s)
	w.WriteString(codes[Reset])
}

// WriteStringFixed writes s in color c padded or cut to exactly width
// runes. Padding goes to the left when rightJustify is set.
func (c Color) WriteStringFixed(w io.StringWriter, s string, width int, rightJustify bool) {
	n := utf8.RuneCountInString(s)
	if n > width {
		cut := 0
		for i := 0; i < width; i++ {
			_, size := utf8.DecodeRuneInString(s[cut:])
			cut += size
		}
		s = s[:cut]
		n = width
	}

	if rightJustify {
		pad(w, width-n)
	}
	c.WriteString(w, s)
	if !rightJustify {
		pad(w, width-n)
	}
}
