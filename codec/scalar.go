// Package codec converts submitted form strings into typed Go values.
//
// Precedence is fixed: number (unless the text looks like a phone number),
// then boolean, then date. Anything else stays the original string, so
// coercion never fails.
package codec

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// NumberMode dictates how numeric strings are represented.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // float64 (precision loss above 2^53).
	NumberJSONNumber                   // json.Number holding the text as a JSON literal.
)

// Scalar configures which conversions Coerce may apply.
// The zero value converts nothing; use Defaults for the usual setup.
type Scalar struct {
	Numbers    bool
	Booleans   bool
	Dates      bool
	NumberMode NumberMode
}

// Defaults enables every conversion with float64 numbers.
func Defaults() Scalar {
	return Scalar{Numbers: true, Booleans: true, Dates: true}
}

// Coerce converts s by the first matching rule, or returns s unchanged.
func (c Scalar) Coerce(s string) any {
	if c.Numbers {
		if n, ok := ParseNumber(s, c.NumberMode); ok {
			return n
		}
	}
	if c.Booleans {
		if b, ok := ParseBool(s); ok {
			return b
		}
	}
	if c.Dates {
		if t, ok := ParseDate(s); ok {
			return t
		}
	}
	return s
}

// numericRe accepts an optional sign, optional integer part and an optional
// fraction. Exponents, hex and Infinity/NaN are not numeric.
var numericRe = regexp.MustCompile(`^[+-]?([0-9]*[.])?[0-9]+$`)

// IsNumeric reports whether s is a plain decimal literal.
func IsNumeric(s string) bool { return numericRe.MatchString(s) }

// ParseNumber converts s when it is numeric and not phone-shaped.
func ParseNumber(s string, mode NumberMode) (any, bool) {
	if !IsNumeric(s) || LooksLikePhone(s) {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return nil, false
	}
	if mode == NumberJSONNumber {
		return json.Number(jsonLiteral(s)), true
	}
	return f, true
}

// jsonLiteral rewrites a numeric string into the JSON number grammar
// without changing its digits: "+5" -> "5", ".5" -> "0.5", "-.25" -> "-0.25",
// "007" -> "7". s must satisfy IsNumeric.
func jsonLiteral(s string) string {
	sign := ""
	switch s[0] {
	case '-':
		sign, s = "-", s[1:]
	case '+':
		s = s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if hasFrac {
		return sign + intPart + "." + frac
	}
	return sign + intPart
}

// ParseBool accepts exactly "true" or "false".
func ParseBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

var (
	// international: E.164, '+' then up to 15 digits
	intlPhoneRe = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)
	// national trunk prefix: a leading 0 and at least 9 digits overall
	trunkPhoneRe = regexp.MustCompile(`^0[0-9]{8,14}$`)
)

// LooksLikePhone reports whether s is shaped like a phone number. Such
// strings are kept as text so leading zeros and '+' survive.
func LooksLikePhone(s string) bool {
	return intlPhoneRe.MatchString(s) || trunkPhoneRe.MatchString(s)
}
