// Package phone normalizes free-form phone input into an E.164-like
// canonical form and validates it against a configurable home numbering
// plan plus a loose international envelope.
package phone

import (
	"fmt"
	"strings"
)

const (
	// MinDigits is the smallest digit count accepted for any number.
	MinDigits = 7
	// MaxDigits is the E.164 upper bound.
	MaxDigits = 15
)

// Plan describes the single numbering plan that receives special-cased
// recognition and pretty-printing. National numbers are assumed to carry
// ten significant digits after the country code.
type Plan struct {
	// CountryCode without the leading plus, e.g. "7".
	CountryCode string
	// TrunkPrefix is the domestic dialing prefix rewritten to the
	// country code on formatting, e.g. '8'.
	TrunkPrefix byte
	// MobileLead is the leading digit of a bare domestic mobile number
	// accepted without any country code, e.g. '9'.
	MobileLead byte
}

// DefaultPlan is the Russian numbering plan used by the original intake
// form: +7 / 8 trunk / bare 9xxxxxxxxx mobiles.
var DefaultPlan = Plan{CountryCode: "7", TrunkPrefix: '8', MobileLead: '9'}

const nationalDigits = 10

// NationalLen reports the full digit count of a home-plan number
// including the country code.
func (p Plan) NationalLen() int {
	return len(p.CountryCode) + nationalDigits
}

// Clean strips every rune except digits and '+'. It performs no
// validation; feed the result to Valid.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether a cleaned number is acceptable. Exactly one
// leading '+' is stripped before inspection, so a doubled plus leaves a
// non-digit behind and rejects.
func (p Plan) Valid(cleaned string) bool {
	digits := strings.TrimPrefix(cleaned, "+")
	if digits == "" || !allDigits(digits) {
		return false
	}
	if len(digits) < MinDigits || len(digits) > MaxDigits {
		return false
	}

	hasPlus := strings.HasPrefix(cleaned, "+")

	// Home-plan shapes are checked strictly before the loose
	// international fallbacks.
	switch {
	case hasPlus && strings.HasPrefix(digits, p.CountryCode):
		return len(digits) == p.NationalLen()
	case !hasPlus && digits[0] == p.TrunkPrefix:
		return len(digits) == p.NationalLen()
	case !hasPlus && strings.HasPrefix(digits, p.CountryCode):
		return len(digits) == p.NationalLen()
	case !hasPlus && len(digits) == nationalDigits && digits[0] == p.MobileLead:
		return true
	}

	if hasPlus {
		return true // length envelope already enforced above
	}
	// No plus: treat as "foreign country code already present" only when
	// long enough and not starting with a home-plan reserved digit.
	return len(digits) >= 10 && !p.reservedLead(digits[0])
}

// Format renders a validated number for display. Home-plan numbers
// become "+CC (AAA) BBB-CC-DD"; the trunk prefix is rewritten to the
// country code and a bare mobile number gets the country code prepended.
// Anything else is returned with a leading '+'. The input is cleaned
// first, which makes Format idempotent on its own output. Behaviour on
// input rejected by Valid is undefined.
func (p Plan) Format(raw string) string {
	cleaned := Clean(raw)
	digits := strings.TrimPrefix(cleaned, "+")

	switch {
	case digits != "" && digits[0] == p.TrunkPrefix && len(digits) == p.NationalLen():
		digits = p.CountryCode + digits[1:]
	case len(digits) == nationalDigits && digits != "" && digits[0] == p.MobileLead:
		digits = p.CountryCode + digits
	}

	if len(digits) == p.NationalLen() && strings.HasPrefix(digits, p.CountryCode) {
		n := digits[len(p.CountryCode):]
		return fmt.Sprintf("+%s (%s) %s-%s-%s",
			p.CountryCode, n[0:3], n[3:6], n[6:8], n[8:10])
	}

	if !strings.HasPrefix(cleaned, "+") {
		return "+" + digits
	}
	return cleaned
}

func (p Plan) reservedLead(d byte) bool {
	return d == p.TrunkPrefix || d == p.MobileLead ||
		(p.CountryCode != "" && d == p.CountryCode[0])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
