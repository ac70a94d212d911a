package validate

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/flameo/internal/catalog"
)

// maxSuggestions caps the alternatives listed in a rejection.
const maxSuggestions = 3

// Enum matches raw against candidates, ignoring case and diacritics.
// An exact match wins; otherwise the candidate with the best Similarity
// at or above EnumSimilarityThreshold is accepted. The accepted value is
// the candidate's display form.
func Enum(raw string, candidates []string, label string) Result {
	input := catalog.Normalize(raw)

	for _, c := range candidates {
		if catalog.Normalize(c) == input {
			return Accept(c)
		}
	}

	best, bestScore := "", 0.0
	for _, c := range candidates {
		if score := Similarity(input, catalog.Normalize(c)); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore >= EnumSimilarityThreshold {
		return Accept(best)
	}

	reason := fmt.Sprintf("%s non reconnu : « %s ».", label, strings.TrimSpace(raw))
	if suggestions := suggest(input, candidates); len(suggestions) > 0 {
		reason += " Vouliez-vous dire : " + strings.Join(suggestions, ", ") + " ?"
	} else {
		reason += " Valeurs possibles : " + strings.Join(candidates, ", ") + "."
	}
	return Reject(reason)
}

// suggest lists candidates sharing a four-letter word prefix with input.
func suggest(input string, candidates []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, w := range catalog.Words(input) {
		if len(w) < 4 {
			continue
		}
		prefix := w[:4]
		for _, c := range candidates {
			if seen[c] {
				continue
			}
			for _, cw := range catalog.Words(catalog.Normalize(c)) {
				if strings.HasPrefix(cw, prefix) {
					out = append(out, c)
					seen[c] = true
					break
				}
			}
			if len(out) == maxSuggestions {
				return out
			}
		}
	}
	return out
}
