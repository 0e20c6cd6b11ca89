package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMoney parses a non-negative amount such as a price.
func ParseMoney(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("amount must not be negative")
	}
	return v, nil
}

// ParseCount parses a non-negative whole stock count.
func ParseCount(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("count must not be negative")
	}
	return v, nil
}

// ParseQuantity parses a purchase quantity, which must be at least 1.
func ParseQuantity(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if v < 1 {
		return 0, fmt.Errorf("quantity must be at least 1")
	}
	return v, nil
}

// FormatMoney renders an amount with two decimal places.
func FormatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
