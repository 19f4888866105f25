// Package qif reads bank and cash transactions from Quicken Interchange
// Format files.
package qif

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Split is one line of a split transaction.
type Split struct {
	Category string // S
	Memo     string // E
	Amount   string // $
}

// Entry is a non-investment QIF transaction. Field values are kept as they
// appear in the file; dates in particular are locale dependent.
type Entry struct {
	// Type is the account type of the enclosing "!Type:" section.
	Type string

	Date     string   // D
	Amount   string   // T, or U when present
	Number   string   // N
	Payee    string   // P
	Memo     string   // M
	Address  []string // A
	Cleared  string   // C
	Category string   // L
	Splits   []Split

	// Line is the line number of the first field.
	Line int
}

// Decoder reads entries from a QIF stream.
type Decoder struct {
	r        *bufio.Reader
	line     int
	section  string
	skipping bool
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next entry, or io.EOF after the last one. Account and
// option sections are skipped.
func (d *Decoder) Next() (*Entry, error) {
	var e *Entry
	for {
		line, err := d.readLine()
		if errors.Is(err, io.EOF) {
			if e != nil {
				return nil, fmt.Errorf("line %d: entry not terminated by '^'", e.Line)
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		if line == "" {
			continue
		}

		if line[0] == '!' {
			if e != nil {
				return nil, fmt.Errorf("line %d: header inside entry", d.line)
			}
			d.header(line)
			continue
		}
		if line[0] == '^' {
			if d.skipping || e == nil {
				continue
			}
			return e, nil
		}
		if d.skipping {
			continue
		}

		if e == nil {
			e = &Entry{Type: d.section, Line: d.line}
		}
		e.set(line[0], line[1:])
	}
}

// ReadAll returns every remaining entry.
func (d *Decoder) ReadAll() ([]*Entry, error) {
	var entries []*Entry
	for {
		e, err := d.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
}

func (d *Decoder) header(line string) {
	name, value, _ := strings.Cut(line[1:], ":")
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "type":
		d.section = strings.TrimSpace(value)
		// investment, category and class lists are not transactions
		switch strings.ToLower(d.section) {
		case "invst", "cat", "class", "memorized":
			d.skipping = true
		default:
			d.skipping = false
		}
	case "account":
		d.skipping = true
	case "option", "clear":
	default:
		d.skipping = true
	}
}

func (e *Entry) set(field byte, value string) {
	switch field {
	case 'D':
		e.Date = strings.TrimSpace(value)
	case 'T':
		if e.Amount == "" {
			e.Amount = cleanAmount(value)
		}
	case 'U':
		e.Amount = cleanAmount(value)
	case 'N':
		e.Number = value
	case 'P':
		e.Payee = value
	case 'M':
		if e.Memo != "" {
			e.Memo += "\n"
		}
		e.Memo += value
	case 'A':
		e.Address = append(e.Address, value)
	case 'C':
		e.Cleared = value
	case 'L':
		e.Category = value
	case 'S':
		e.Splits = append(e.Splits, Split{Category: value})
	case 'E':
		e.lastSplit().Memo = value
	case '$':
		e.lastSplit().Amount = cleanAmount(value)
	}
}

// lastSplit returns the split being read, starting one when E or $ comes
// before any S line.
func (e *Entry) lastSplit() *Split {
	if len(e.Splits) == 0 {
		e.Splits = append(e.Splits, Split{})
	}
	return &e.Splits[len(e.Splits)-1]
}

// cleanAmount drops thousands separators.
func cleanAmount(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

func (d *Decoder) readLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}
	d.line++
	return strings.TrimRight(line, "\r\n"), nil
}

// Parse reads all entries from r.
func Parse(r io.Reader) ([]*Entry, error) {
	return NewDecoder(r).ReadAll()
}
