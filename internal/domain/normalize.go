package domain

import (
	"fmt"
	"strings"
)

// InvalidPhoneNumber replaces phone numbers that cannot be normalized.
const InvalidPhoneNumber = "Your phone number is incorrect"

const zipcodeLength = 5

// CleanZipcode left-pads raw with '0' to five characters and keeps the first five.
func CleanZipcode(raw string) string {
	runes := []rune(raw)
	if pad := zipcodeLength - len(runes); pad > 0 {
		runes = append([]rune(strings.Repeat("0", pad)), runes...)
	}
	return string(runes[:zipcodeLength])
}

// CleanPhoneNumber formats raw as "(AAA) BBB-CCCC", or returns InvalidPhoneNumber.
func CleanPhoneNumber(raw string) string {
	digits := digitsOnly(raw)

	switch {
	case len(digits) == 10:
		return formatPhone(digits)
	case len(digits) == 11 && digits[0] == '1':
		return formatPhone(digits[1:])
	default:
		return InvalidPhoneNumber
	}
}

// CleanContact normalizes the contact fields of a record.
func CleanContact(rec AttendeeRecord) CleanedContact {
	return CleanedContact{
		Zipcode: CleanZipcode(rec.Zipcode),
		Phone:   CleanPhoneNumber(rec.HomePhone),
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatPhone(digits string) string {
	return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
}
