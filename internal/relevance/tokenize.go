package relevance

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into maximal runs of letters,
// digits, or underscore. Everything else is a delimiter, so no empty tokens
// are produced. Classification follows Unicode categories, not just ASCII,
// so non-Latin scripts survive tokenization.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	var tokens []string
	var current strings.Builder
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
