// FILE: internal/pkg/password/policy.go
package password

import (
	"strings"
	"unicode"
)

const minLength = 8

// A short list of passwords rejected outright. Matching is
// case-insensitive.
var commonPasswords = map[string]struct{}{
	"password":   {},
	"password1":  {},
	"12345678":   {},
	"123456789":  {},
	"qwerty123":  {},
	"iloveyou":   {},
	"admin123":   {},
	"letmein1":   {},
	"welcome1":   {},
	"sunshine":   {},
	"superman":   {},
	"trustno1":   {},
	"qwertyuiop": {},
	"1q2w3e4r":   {},
	"baseball":   {},
	"football":   {},
}

// Validate checks a candidate password against the strength policy and
// returns the list of failures. An empty slice means the password is
// acceptable.
func Validate(candidate, username string) []string {
	var failures []string

	if len(candidate) < minLength {
		failures = append(failures, "This password is too short. It must contain at least 8 characters.")
	}

	if candidate != "" && isEntirelyNumeric(candidate) {
		failures = append(failures, "This password is entirely numeric.")
	}

	if _, ok := commonPasswords[strings.ToLower(candidate)]; ok {
		failures = append(failures, "This password is too common.")
	}

	if tooSimilar(candidate, username) {
		failures = append(failures, "The password is too similar to the username.")
	}

	return failures
}

func isEntirelyNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func tooSimilar(candidate, attribute string) bool {
	if attribute == "" {
		return false
	}
	c := strings.ToLower(candidate)
	a := strings.ToLower(attribute)
	return strings.Contains(c, a) || strings.Contains(a, c)
}
