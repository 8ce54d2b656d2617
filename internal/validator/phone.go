package validator

import "strings"

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// ValidPhone accepts digits with an optional leading '+', separated by spaces,
// dashes, dots or parentheses, carrying 7 to 15 digits in total.
func ValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	digits := 0
	depth := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+':
			if i != 0 {
				return false
			}
		case r == '(':
			depth++
			if depth > 1 {
				return false
			}
		case r == ')':
			depth--
			if depth < 0 {
				return false
			}
		case r == ' ', r == '-', r == '.':
		default:
			return false
		}
	}

	return depth == 0 && digits >= minPhoneDigits && digits <= maxPhoneDigits
}

// NormalizePhone trims surrounding whitespace and collapses inner runs of spaces.
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), " ")
}
