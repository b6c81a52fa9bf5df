package imei

import (
	"errors"
	"strings"
)

// Length is the number of digits in an IMEI, including the check digit.
const Length = 15

// ErrInvalidBody is returned by CheckDigit for input that is not exactly
// 14 ASCII digits.
var ErrInvalidBody = errors.New("imei body must be 14 digits")

// Validate reports whether s is a 15-digit IMEI with a correct check digit.
// Input is not trimmed; callers normalize first.
func Validate(s string) bool {
	if len(s) != Length || !allDigits(s) {
		return false
	}
	return luhnSum(s)%10 == 0
}

// Normalize trims surrounding whitespace from user-supplied IMEI input.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// CheckDigit returns the digit that completes a 14-digit IMEI body.
func CheckDigit(body string) (byte, error) {
	if len(body) != Length-1 || !allDigits(body) {
		return 0, ErrInvalidBody
	}
	// The check digit sits at index 14 (even), so it is added undoubled.
	sum := luhnSum(body)
	return byte('0' + (10-sum%10)%10), nil
}

// luhnSum sums the digits of s, doubling those at odd 0-based indexes.
func luhnSum(s string) int {
	sum := 0
	for i := 0; i < len(s); i++ {
		d := int(s[i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
