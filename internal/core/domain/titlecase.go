package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleCase upper-cases the first letter of every whitespace separated word
// and lower-cases the rest. Leading punctuation is left untouched.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	atWordStart := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch {
		case unicode.IsSpace(r):
			atWordStart = true
			b.WriteRune(r)
		case atWordStart && isWordRune(r):
			atWordStart = false
			b.WriteRune(unicode.ToUpper(r))
		case atWordStart:
			b.WriteRune(r)
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
