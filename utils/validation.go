// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phoneRegex = regexp.MustCompile(`^(\+?[1-9]\d{1,14}|0\d{9,10})$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*$`)
)

// ValidatePhone checks if a phone number is in a valid international or
// Japanese domestic format. Separators are stripped before matching.
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")
	return phoneRegex.MatchString(cleaned)
}

// ValidateEmail checks the address shape, not deliverability.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}
