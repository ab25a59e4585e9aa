// Package convert handles the amount typed by the user and the converted values
// shown next to each rate.
package convert

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var validInput = regexp.MustCompile(`^$|^\d*\.?\d*$`)

// Sanitize drops everything but digits and the first decimal point.
func Sanitize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	seenPoint := false
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid accepts an empty string or digits with at most one decimal point.
func IsValid(input string) bool {
	return validInput.MatchString(input)
}

// ParseAmount defaults to 1 when input is empty or not a number.
func ParseAmount(input string) decimal.Decimal {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return amount
}

func Convert(amount decimal.Decimal, rate float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(rate))
}

// Format renders value with two decimals, rounding half away from zero.
func Format(value decimal.Decimal) string {
	return value.StringFixed(2)
}
