package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips diacritics ("Hôpital" → "hopital"),
// replaces apostrophes and hyphens with spaces and collapses whitespace.
// Every vocabulary comparison in the audit goes through it.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	folded = strings.Map(func(r rune) rune {
		switch r {
		case '\'', '’', '-', '_':
			return ' '
		}
		return r
	}, folded)

	return strings.Join(strings.Fields(folded), " ")
}

// Words splits normalized text into alphanumeric tokens.
func Words(normalized string) []string {
	return strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContainsWord reports whether phrase appears in normalized text on word
// boundaries. Both arguments must already be normalized.
func ContainsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	padded := " " + strings.Join(Words(text), " ") + " "
	return strings.Contains(padded, " "+strings.Join(Words(phrase), " ")+" ")
}
