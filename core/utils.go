package core

import (
	"strings"
	"unicode"
)

// NormalizeQuery lowers `s` and drops every whitespace rune, inner ones included.
// "สม ชาย " and "สมชาย" normalize to the same key.
func NormalizeQuery(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(s))
}
