package validators

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// NormalizePhone strips the separators people type into phone numbers.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(strings.TrimSpace(phone))
}

// IsPhoneValid accepts E.164-style numbers, with or without the leading +.
func IsPhoneValid(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}
