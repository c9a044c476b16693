package fill

import (
	"fmt"
	"strings"
	"unicode"
)

// FormatValue canonicalizes a validated value's display form before it
// is written to a document.
//
//	phone: 10 digits render as (XXX) XXX-XXXX; 11 digits with a leading
//	       1 drop the country digit first; anything else passes through.
//	ssn:   9 digits render as XXX-XX-XXXX.
//	ein:   9 digits render as XX-XXXXXXX.
//	address: trimmed verbatim.
//
// All other types pass through unchanged.
func FormatValue(ft FieldType, value string) string {
	switch ft {
	case FieldPhone:
		return formatPhone(value)
	case FieldSSN:
		digits := digitsOnly(value)
		if len(digits) == 9 {
			return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:5], digits[5:])
		}
		return value
	case FieldEIN:
		digits := digitsOnly(value)
		if len(digits) == 9 {
			return fmt.Sprintf("%s-%s", digits[:2], digits[2:])
		}
		return value
	case FieldAddress:
		return strings.TrimSpace(value)
	default:
		return value
	}
}

func formatPhone(value string) string {
	digits := digitsOnly(value)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) == 10 {
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
	}
	return value
}

// digitsOnly strips every non-digit rune.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
