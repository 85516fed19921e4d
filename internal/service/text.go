package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// capitalizeFirst trims s and upper-cases its first letter.
func capitalizeFirst(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
