package batch

import (
	"errors"
	"strings"
)

// ErrCannotIncrement is returned for values that do not end in a digit.
var ErrCannotIncrement = errors.New("cannot increment: value must end with a number")

// Increment adds one to the trailing run of ASCII digits in text, keeping
// the prefix and the original zero padding: "A007" becomes "A008". When the
// run overflows its width the result grows instead of wrapping, so "A999"
// becomes "A1000". An empty value increments to "1".
func Increment(text string) (string, error) {
	if text == "" {
		return "1", nil
	}

	start := len(text)
	for start > 0 && isDigit(text[start-1]) {
		start--
	}
	if start == len(text) {
		return "", ErrCannotIncrement
	}

	digits := []byte(text[start:])
	i := len(digits) - 1
	for ; i >= 0; i-- {
		if digits[i] != '9' {
			digits[i]++
			break
		}
		digits[i] = '0'
	}

	var b strings.Builder
	b.Grow(len(text) + 1)
	b.WriteString(text[:start])
	if i < 0 {
		b.WriteByte('1')
	}
	b.Write(digits)
	return b.String(), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
