// Package masks formats user-entered identity strings for display and strips
// them back to raw digits. All functions are total: any input yields a
// (possibly partial) formatted string, and no digit is ever dropped.
package masks

import (
	"fmt"
	"strings"
)

// PostalCodeLength is the raw digit count of a complete postal code; reaching
// it is what triggers the address lookup during checkout.
const PostalCodeLength = 8

// Phone formats a phone number as (AA) BBBB-CCCC for up to 10 digits and
// (AA) BBBBB-CCCC beyond that. Input shorter than the fixed groups is
// returned as bare digits.
func Phone(raw string) string {
	cleaned := Unmask(raw)
	body := 4
	if len(cleaned) > 10 {
		body = 5
	}
	if len(cleaned) < 2+body {
		return cleaned
	}
	return fmt.Sprintf("(%s) %s-%s", cleaned[:2], cleaned[2:2+body], cleaned[2+body:])
}

// TaxID formats an individual id as AAA.BBB.CCC-DD for up to 11 digits and an
// organization id as AA.BBB.CCC/DDDD-EE beyond that.
func TaxID(raw string) string {
	cleaned := Unmask(raw)
	if len(cleaned) <= 11 {
		if len(cleaned) < 9 {
			return cleaned
		}
		return fmt.Sprintf("%s.%s.%s-%s", cleaned[:3], cleaned[3:6], cleaned[6:9], cleaned[9:])
	}
	if len(cleaned) < 12 {
		return cleaned
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", cleaned[:2], cleaned[2:5], cleaned[5:8], cleaned[8:12], cleaned[12:])
}

// PostalCode formats a postal code as AAAAA-BBB.
func PostalCode(raw string) string {
	cleaned := Unmask(raw)
	if len(cleaned) < 5 {
		return cleaned
	}
	return fmt.Sprintf("%s-%s", cleaned[:5], cleaned[5:])
}

// Unmask strips every non-digit character.
func Unmask(display string) string {
	var b strings.Builder
	b.Grow(len(display))
	for _, r := range display {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PostalCodeComplete reports whether the input carries exactly the raw digit
// count of a full postal code.
func PostalCodeComplete(display string) bool {
	return len(Unmask(display)) == PostalCodeLength
}
