package pcomb

import (
	"math"
	"strconv"
	"unicode"
)

// DecimalDigit accepts a single ASCII digit.
var DecimalDigit = Satisfy(func(r rune) bool {
	return r >= '0' && r <= '9'
}).WithLabel("decimal_digit")

// HexCase controls which letter case hex_digit accepts.
type HexCase int

const (
	// HexAny accepts both upper and lower case hex letters.
	HexAny HexCase = iota
	// HexLower accepts only lower case hex letters a-f.
	HexLower
	// HexUpper accepts only upper case hex letters A-F.
	HexUpper
)

// HexDigit accepts a single hexadecimal digit under the given case policy.
func HexDigit(policy HexCase) Parser[rune] {
	return Satisfy(func(r rune) bool {
		if r >= '0' && r <= '9' {
			return true
		}

		switch policy {
		case HexLower:
			return r >= 'a' && r <= 'f'
		case HexUpper:
			return r >= 'A' && r <= 'F'
		default:
			return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		}
	}).WithLabel(label("hex_digit", int(policy)))
}

// Decimal parses one or more decimal digits and returns their integer
// value.
var Decimal = Lift(strconv.Atoi, TakeWhile1(unicode.IsDigit)).WithLabel("decimal")

// DecimalFraction parses an optional sign, a decimal whole part, an
// optional '.'-prefixed fractional part, and an optional [eE]-prefixed
// signed exponent, returning the resulting real value:
//
//	sign? decimal ('.' decimal)? ([eE] sign? decimal)?
//
// The value is computed by starting from the whole part; if a fractional
// part of length k is present, fractional/10^k is added; the leading sign
// negates the result; and a present exponent, with its own sign, scales
// the result by 10^(±e).
var DecimalFraction = Coroutine("decimal_fraction", func(c *Context) (float64, error) {
	neg := false
	if sign, err := Optional(CharIn("+-")).Run(c); err != nil {
		return 0, err
	} else if sign != nil && *sign == '-' {
		neg = true
	}

	wholeDigits, err := Consumed(Many1(DecimalDigit)).Run(c)
	if err != nil {
		return 0, err
	}

	whole, err := strconv.ParseFloat(wholeDigits, 64)
	if err != nil {
		return 0, err
	}

	value := whole

	if dot, err := Optional(Rune('.')).Run(c); err != nil {
		return 0, err
	} else if dot != nil {
		fracDigits, err := Consumed(Many1(DecimalDigit)).Run(c)
		if err != nil {
			return 0, err
		}

		frac, err := strconv.ParseFloat(fracDigits, 64)
		if err != nil {
			return 0, err
		}

		value += frac / math.Pow10(len(fracDigits))
	}

	if neg {
		value = -value
	}

	if e, err := Optional(CharIn("eE")).Run(c); err != nil {
		return 0, err
	} else if e != nil {
		expNeg := false
		if esign, err := Optional(CharIn("+-")).Run(c); err != nil {
			return 0, err
		} else if esign != nil && *esign == '-' {
			expNeg = true
		}

		expDigits, err := Consumed(Many1(DecimalDigit)).Run(c)
		if err != nil {
			return 0, err
		}

		exp, err := strconv.Atoi(expDigits)
		if err != nil {
			return 0, err
		}

		if expNeg {
			exp = -exp
		}

		value *= math.Pow10(exp)
	}

	return value, nil
})
