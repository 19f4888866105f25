package cashbook

import (
	"fmt"
	"strings"
	"time"

	date "github.com/joyt/godate"
)

// DateLayout is the canonical form of a transaction date.
const DateLayout = "2006-01-02"

// dateInputLayout also accepts single digit months and days ("2025-1-5").
const dateInputLayout = "2006-1-2"

// now is replaced in tests.
var now = time.Now

// Today returns the current local calendar date.
func Today() time.Time {
	return dateOf(now())
}

// ParseDate parses a year-month-day date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateInputLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("date", s, ErrInvalidDate)
	}
	return t, nil
}

// DateParser parses dates in any layout it can recognise, remembering the
// layout of the previous value so runs of dates in the same format are cheap.
// Use it for user input and bank files; ledger records go through ParseDate.
type DateParser struct {
	layout string

	prevString string
	prevDate   time.Time
	prevErr    error
}

// Parse returns the calendar date of s.
func (p *DateParser) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	// seen before, skip parse
	if s == p.prevString && p.prevString != "" {
		return p.prevDate, p.prevErr
	}

	t, err := time.Parse(dateInputLayout, s)
	if err != nil && p.layout != "" {
		t, err = time.Parse(p.layout, s)
	}
	if err != nil {
		var layout string
		t, layout, err = date.ParseAndGetLayout(s)
		if err != nil {
			err = fmt.Errorf("unable to parse date(%s): %w", s, err)
		} else {
			p.layout = layout
		}
	}
	if err == nil {
		t = dateOf(t)
	}

	p.prevString = s
	p.prevDate = t
	p.prevErr = err

	return t, err
}

// dateOf strips the clock and location from t.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
