package validate

import (
	"strings"

	"github.com/HendryAvila/flameo/internal/catalog"
)

// Word sets for boolean answers, written normalized (no diacritics).
var (
	positiveWords = []string{"oui", "yes", "vrai", "true", "1", "o", "ok", "present", "affiche"}
	negativeWords = []string{"non", "no", "faux", "false", "0", "n", "absent", "pas affiche"}

	negationWords = map[string]bool{"non": true, "pas": true, "no": true, "not": true}
)

// Boolean reads a yes/no answer.
//
// Matching runs from most to least specific so that "non" is never read
// as containing "o", and "pas affiché" is never read as "affiché":
//  1. the whole answer equals a word of either set
//  2. a negation directly before a positive word ("non affiché") is negative
//  3. a multi-word phrase of either set appears in the answer
//  4. a single word of the answer belongs to a set, positive set first
func Boolean(raw string) Result {
	normalized := catalog.Normalize(raw)

	for _, w := range positiveWords {
		if normalized == w {
			return Accept(true)
		}
	}
	for _, w := range negativeWords {
		if normalized == w {
			return Accept(false)
		}
	}

	words := catalog.Words(normalized)
	if negatesPositive(words) {
		return Accept(false)
	}

	for _, w := range negativeWords {
		if strings.Contains(w, " ") && catalog.ContainsWord(normalized, w) {
			return Accept(false)
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(w, " ") && catalog.ContainsWord(normalized, w) {
			return Accept(true)
		}
	}

	if matchesAny(words, positiveWords) {
		return Accept(true)
	}
	if matchesAny(words, negativeWords) {
		return Accept(false)
	}

	return Reject("Répondez par oui ou par non.")
}

// negatesPositive reports whether a negation word directly precedes a
// positive word, as in "non affiché" or "pas present".
func negatesPositive(words []string) bool {
	for i := 1; i < len(words); i++ {
		if negationWords[words[i-1]] && matchesAny(words[i:i+1], positiveWords) {
			return true
		}
	}
	return false
}

func matchesAny(words, set []string) bool {
	for _, w := range words {
		for _, s := range set {
			if w == s {
				return true
			}
		}
	}
	return false
}
