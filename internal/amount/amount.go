// Package amount parses statement amount cells into exact decimals.
package amount

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MinPlaces is the number of fractional digits amounts are rendered with
// unless the value carries more.
const MinPlaces = 2

var (
	currencySymbols = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "", "₹", "", "฿", "")
	currencyCodes   = regexp.MustCompile(`(?i)\b(USD|EUR|GBP|THB|BAHT|JPY|INR|CAD|AUD|CHF|SGD)\b`)
	allowedChars    = regexp.MustCompile(`^[0-9.,()\-\s]+$`)
	digits          = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)
)

// Parse converts a raw amount cell to a signed decimal. Thousands separators
// and currency markers are stripped; "(1.00)" and "-1.00" are both negative.
// ok is false when the cell cannot be read as an amount.
func Parse(raw string) (d decimal.Decimal, ok bool) {
	s := currencySymbols.Replace(raw)
	s = currencyCodes.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" || !allowedChars.MatchString(s) {
		return decimal.Zero, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.ContainsAny(s, "()") {
		return decimal.Zero, false
	}

	// "- 12.00" is written by some statement exporters.
	if strings.HasPrefix(s, "-") {
		if neg {
			return decimal.Zero, false
		}
		neg = true
		s = strings.TrimSpace(s[1:])
	}

	if dot := strings.IndexByte(s, '.'); dot >= 0 && strings.Contains(s[dot:], ",") {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", "")
	if !digits.MatchString(s) {
		return decimal.Zero, false
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// Format renders d with at least MinPlaces fractional digits, keeping any
// extra precision the value carries.
func Format(d decimal.Decimal) string {
	places := int32(MinPlaces)
	if exp := -d.Exponent(); exp > places {
		places = exp
	}
	return d.StringFixed(places)
}
