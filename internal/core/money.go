// Package core holds the budgeting domain types and money handling.
//
// Amounts are kept as integer cents to avoid floating point drift in
// cumulative sums; parsing performs half-up rounding on the third
// decimal digit.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a non-negative rupee amount in cents.
type Money struct {
	Cents int64 `json:"cents"`
}

// ParseAmount converts a decimal string to Money.
//
// It accepts dot (12.34) and comma (12,34) decimal separators. Zero is a
// valid amount (a zero budget is legal, percentage math guards for it);
// signs, empty strings and any non-digit noise are rejected.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return Money{}, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return Money{Cents: iv*100 + fracCents}, nil
}

// Rupees returns the rupee value as float64, for display only.
// Use cents for all arithmetic.
func (m Money) Rupees() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount with the rupee sign and two decimals.
func (m Money) String() string {
	return fmt.Sprintf("₹%.2f", m.Rupees())
}

// PercentOf reports how much of budget this amount consumes, as a
// percentage. A zero budget yields 0 rather than a division error.
func (m Money) PercentOf(budget Money) float64 {
	if budget.Cents == 0 {
		return 0
	}
	return float64(m.Cents) / float64(budget.Cents) * 100
}
