// Package knowledge holds the static multilingual corpus the bot answers from:
// training blocks, fixed reply tables, country names, forbidden topic defaults
// and the user-facing message templates.
package knowledge

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Normalize prepares user text for keyword matching: NFC, unicode lower case,
// collapsed whitespace. Combining marks are kept since й, ї and ё carry meaning.
func Normalize(text string) string {
	composed, _, err := transform.String(norm.NFC, text)
	if err != nil {
		composed = text
	}
	return strings.Join(strings.Fields(lower.String(composed)), " ")
}

// Words splits normalized text into letter/digit tokens.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})
}

// WordCount counts whitespace separated words, like a user would.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ContainsAny reports the first keyword contained in text.
func ContainsAny(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// Trimmed strips surrounding punctuation, emoji and spaces.
func Trimmed(text string) string {
	return strings.TrimFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
