// Package field implements per-field normalization, derivation and
// validation rules shared by the draft editor and the validation engine.
package field

import "strings"

// NormalizePhone cleans a phone number down to digits plus a leading "+"
// and, when at least ten digits are present, formats it as
// "+<country> (<area>) <exchange>-<line>". Numbers without an explicit
// country prefix are assumed to be +1. Shorter inputs are returned in
// cleaned form. Reapplying the function to its own output is a no-op.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return ""
	}
	hasPrefix := strings.HasPrefix(cleaned, "+")

	digits := strings.ReplaceAll(cleaned, "+", "")
	if !hasPrefix {
		digits = "1" + digits
	}

	if len(digits) < 10 {
		return "+" + digits
	}

	country := digits[:len(digits)-10]
	area := digits[len(digits)-10 : len(digits)-7]
	exchange := digits[len(digits)-7 : len(digits)-4]
	line := digits[len(digits)-4:]
	return "+" + country + " (" + area + ") " + exchange + "-" + line
}
