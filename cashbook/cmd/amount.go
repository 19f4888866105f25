package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/alfredxing/calc/compute"
	"github.com/plenert/cashbook"
	"github.com/shopspring/decimal"
)

// parseAmount reads an amount typed by the user or found in an import. When
// both "," and "." appear, the last one is the decimal mark and the other
// groups thousands, so "1.234,56" and "1,234.56" agree. A lone comma is a
// decimal comma. Arithmetic such as "(12.5 * 3)" is evaluated.
func parseAmount(s string) (decimal.Decimal, error) {
	s = normalizeSeparators(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, cashbook.ErrNonPositiveAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		v, err := compute.Evaluate(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, cashbook.ErrNonPositiveAmount)
		}
		d = decimal.NewFromFloat(v).Round(2)
	}
	if err := cashbook.CheckAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func normalizeSeparators(s string) string {
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma < 0:
		return s
	case dot < 0:
		return strings.ReplaceAll(s, ",", ".")
	case comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		return strings.ReplaceAll(s, ",", ".")
	}
	return strings.ReplaceAll(s, ",", "")
}
