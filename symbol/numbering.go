package symbol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
)

// encodeISBN10 prints an ISBN-10 as its EAN-13 Bookland form: 978, the
// first nine digits and a new EAN check digit.
func encodeISBN10(s string) (barcode.Barcode, error) {
	if len(s) != 9 && len(s) != 10 {
		return nil, fmt.Errorf("needs 9 or 10 characters, got %d", len(s))
	}
	if !allDigits(s[:9]) {
		return nil, errors.New("the first 9 characters must be digits")
	}
	if len(s) == 10 {
		if want := mod11Check(s[:9], 10); s[9] != want {
			return nil, fmt.Errorf("check character is %c, want %c", s[9], want)
		}
	}
	return ean.Encode("978" + s[:9])
}

// encodeISSN prints an ISSN as EAN-13: 977, the first seven digits, 00 and a
// new EAN check digit.
func encodeISSN(s string) (barcode.Barcode, error) {
	if len(s) != 7 && len(s) != 8 {
		return nil, fmt.Errorf("needs 7 or 8 characters, got %d", len(s))
	}
	if !allDigits(s[:7]) {
		return nil, errors.New("the first 7 characters must be digits")
	}
	if len(s) == 8 {
		if want := mod11Check(s[:7], 8); s[7] != want {
			return nil, fmt.Errorf("check character is %c, want %c", s[7], want)
		}
	}
	return ean.Encode("977" + s[:7] + "00")
}

// encodePZN prints a Pharmazentralnummer (PZN7) as Code 39 "PZN-" plus six
// digits and the check digit.
func encodePZN(s string) (barcode.Barcode, error) {
	check, ok := pznCheck(s[:6])
	if !ok {
		return nil, fmt.Errorf("%s has no valid check digit", s[:6])
	}
	if len(s) == 7 && s[6] != check {
		return nil, fmt.Errorf("check digit is %c, want %c", s[6], check)
	}
	return encodeCode39("PZN-" + s[:6] + string(check))
}

// encodeEAN14 prints a GTIN-14 as GS1-128 with application identifier 01.
func encodeEAN14(s string) (barcode.Barcode, error) {
	check := gtinCheck(s[:13])
	if len(s) == 14 && s[13] != check {
		return nil, fmt.Errorf("check digit is %c, want %c", s[13], check)
	}
	return code128.Encode(string(code128.FNC1) + "01" + s[:13] + string(check))
}

// mod11Check is the ISBN-10/ISSN check character: weights count down from
// top, and a remainder of 10 is written X.
func mod11Check(digits string, top int) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (top - i)
	}
	c := (11 - sum%11) % 11
	if c == 10 {
		return 'X'
	}
	return byte('0' + c)
}

// pznCheck weights the digits 2, 3, 4 ... and takes the sum mod 11. Numbers
// whose remainder is 10 are never issued.
func pznCheck(digits string) (byte, bool) {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (i + 2)
	}
	c := sum % 11
	if c == 10 {
		return 0, false
	}
	return byte('0' + c), true
}

// gtinCheck is the GS1 mod 10 check digit, weighting 3 and 1 from the right.
func gtinCheck(digits string) byte {
	sum, w := 0, 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * w
		w = 4 - w
	}
	return byte('0' + (10-sum%10)%10)
}

func stripPZN(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "PZN")
	return stripSeparators(s)
}
