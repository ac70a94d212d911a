// Package audit holds the data model shared by every stage of a fire-safety
// audit: questions, answers, insights and the final risk assessment.
//
// The package has no behavior beyond small typed accessors. Validation,
// detection and scoring live in their own packages and only exchange
// these types:
// - catalog defines the questions
// - validate turns raw text into typed values
// - interview stores them in an AnswerMap
// - insight and scoring read the AnswerMap
package audit

import "fmt"

// --- Risk level enum ---

// RiskLevel is an ordinal severity tag. Values compare with < and >:
// VeryLow < Low < Medium < High < VeryHigh < Critical.
type RiskLevel int

const (
	RiskVeryLow RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskVeryHigh
	RiskCritical
)

// riskNames maps levels to their stable wire names.
var riskNames = [...]string{
	RiskVeryLow:  "VERY_LOW",
	RiskLow:      "LOW",
	RiskMedium:   "MEDIUM",
	RiskHigh:     "HIGH",
	RiskVeryHigh: "VERY_HIGH",
	RiskCritical: "CRITICAL",
}

// RiskLevels returns every level in increasing severity.
func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskVeryLow, RiskLow, RiskMedium, RiskHigh, RiskVeryHigh, RiskCritical}
}

// String returns the wire name, e.g. "VERY_HIGH".
func (r RiskLevel) String() string {
	if r < RiskVeryLow || r > RiskCritical {
		return fmt.Sprintf("RiskLevel(%d)", int(r))
	}
	return riskNames[r]
}

// Valid reports whether r is one of the six defined levels.
func (r RiskLevel) Valid() bool {
	return r >= RiskVeryLow && r <= RiskCritical
}

// ParseRiskLevel converts a wire name back into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	for i, name := range riskNames {
		if name == s {
			return RiskLevel(i), nil
		}
	}
	return RiskVeryLow, fmt.Errorf("invalid risk level %q: must be one of: VERY_LOW, LOW, MEDIUM, HIGH, VERY_HIGH, CRITICAL", s)
}

// MarshalText encodes the level as its wire name so JSON and YAML carry
// "HIGH" rather than 3.
func (r RiskLevel) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid risk level %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a wire name.
func (r *RiskLevel) UnmarshalText(text []byte) error {
	level, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*r = level
	return nil
}
