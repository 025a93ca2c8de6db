package utils

import (
	"regexp"
	"strings"
)

// + prefix optional, 2-15 digits, no leading zero.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var phoneCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// ValidatePhone accepts international-format phone numbers after
// stripping spaces, dashes and parentheses.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phoneCleaner.Replace(phone))
}
