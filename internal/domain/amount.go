package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount bounds. Exponent notation is accepted, so these keep the
// formatted value short enough to fit on one stored line.
const (
	MaxIntegerDigits = 20
	MaxDecimalPlaces = 18
)

// ParseAmount parses a plain decimal string ("1250.5", "1e3").
// Grouping separators, NaN and infinities are rejected, as are values
// outside MaxIntegerDigits and MaxDecimalPlaces.
func ParseAmount(field, text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, &ValidationError{Field: field, Reason: "must not be empty"}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Reason: "must be a valid number"}
	}
	digits, exp := d.NumDigits(), int(d.Exponent())
	if digits+exp > MaxIntegerDigits {
		return decimal.Zero, &ValidationError{Field: field, Reason: "is too large"}
	}
	// Trailing zeros beyond the limit are harmless ("1.000...0"); the
	// exponent check keeps Truncate from rescaling by millions of digits
	if exp < -(MaxDecimalPlaces+digits) || !d.Equal(d.Truncate(MaxDecimalPlaces)) {
		return decimal.Zero, &ValidationError{Field: field, Reason: "has too many decimal places"}
	}
	return d, nil
}

// ParseOptionalAmount treats blank input as zero
func ParseOptionalAmount(field, text string) (decimal.Decimal, error) {
	if strings.TrimSpace(text) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(field, text)
}

// FormatAmount renders d in the locale-invariant form used on disk:
// no grouping, '.' as decimal point, no trailing zeros.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}
