package validate

import "strings"

// Fuzzy matching thresholds.
const (
	// EnumSimilarityThreshold is the minimum score for a building type or
	// usage answer to match a candidate that is not an exact match.
	EnumSimilarityThreshold = 0.7
	// MaterialSimilarityThreshold is the minimum score for a single word to
	// match a material synonym.
	MaterialSimilarityThreshold = 0.8
)

// Similarity is an approximate string similarity in [0, 1] based on
// containment: when one string contains the other, the score is the
// ratio of their lengths; otherwise it is 0. Inputs are expected to be
// normalized already. Equal strings score 1.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	if !strings.Contains(long, short) {
		return 0
	}
	return float64(len(short)) / float64(len(long))
}
