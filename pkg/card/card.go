package card

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

var (
	numberPattern      = regexp.MustCompile(`^[0-9]{12,19}$`)
	expireMonthPattern = regexp.MustCompile(`^[0-9]{1,2}$`)
	expireYearPattern  = regexp.MustCompile(`^[0-9]{4}$`)
	cvvPattern         = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// LuhnValid reports whether cardNumber passes the Luhn checksum.
// Any character other than an ASCII digit makes the number invalid.
// The empty string sums to zero and is therefore valid; use ValidCardNumber
// to also enforce a length.
func LuhnValid(cardNumber string) bool {
	sum := 0
	for i := len(cardNumber) - 1; i >= 0; i-- {
		c := cardNumber[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if (len(cardNumber)-1-i)%2 != 0 {
			d *= 2
		}
		if d > 9 {
			d -= 9
		}
		sum += d
	}
	return sum%10 == 0
}

// ValidCardNumber reports whether x is 12 to 19 digits long and passes the Luhn checksum.
func ValidCardNumber(x any) bool {
	s, ok := stringify(x)
	return ok && numberPattern.MatchString(s) && LuhnValid(s)
}

// ValidExpireMonth reports whether x is one or two digits.
// The value itself is not range checked, so "13" and "99" are accepted.
func ValidExpireMonth(x any) bool {
	s, ok := stringify(x)
	return ok && expireMonthPattern.MatchString(s)
}

// ValidExpireYear reports whether x is exactly four digits.
func ValidExpireYear(x any) bool {
	s, ok := stringify(x)
	return ok && expireYearPattern.MatchString(s)
}

// ValidCVV reports whether x is three or four digits.
func ValidCVV(x any) bool {
	s, ok := stringify(x)
	return ok && cvvPattern.MatchString(s)
}

// stringify renders string and number-like values the way they are typed in a form.
func stringify(x any) (string, bool) {
	switch v := x.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
