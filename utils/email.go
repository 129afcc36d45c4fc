package utils

import "strings"

// NormalizeEmail is the form staff emails are stored and looked up in.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
