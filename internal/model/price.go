package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Prices live in the CSV files as decimal text ("10.00") but are held
// in memory as integer cents, so repeated bookings never accumulate
// binary-float rounding error.

// ParsePrice converts decimal price text to cents. One or two fraction
// digits are accepted ("10", "10.5" and "10.50" all parse); negative
// amounts and longer fractions are rejected.
func ParsePrice(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	w, err := strconv.ParseUint(whole, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	cents := w * 100
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid price %q", s)
		}
		f, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q", s)
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents += f
	}
	if cents > 1<<32-1 {
		return 0, fmt.Errorf("price %q out of range", s)
	}
	return uint32(cents), nil
}

// FormatPrice renders cents as decimal price text with two fraction
// digits, the form the original files use.
func FormatPrice(cents uint32) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
