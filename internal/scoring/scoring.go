// Package scoring turns a completed answer set into a risk assessment.
//
// Every function here is pure: scores are recomputed from the answers on
// demand. A component whose inputs are missing is left out rather than
// counted against the building.
package scoring

import (
	"math"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
)

// timeNow is a package-level variable for testability.
// Maintenance and drill ages are counted up to timeNow().
var timeNow = time.Now

// Score computes the full assessment as of now.
func Score(a *audit.AnswerMap) audit.RiskAssessment {
	return ScoreAt(a, timeNow())
}

// ScoreAt computes the full assessment as of the given day.
func ScoreAt(a *audit.AnswerMap, now time.Time) audit.RiskAssessment {
	fire := FireRisk(a)
	return audit.RiskAssessment{
		FireRisk:          fire,
		StructuralRisk:    StructuralRisk(a),
		EvacuationRisk:    EvacuationRisk(a, now),
		EquipmentAdequacy: EquipmentAdequacy(a),
		ComplianceScore:   Compliance(a, now),
		PriorityActions:   PriorityActions(a, fire, now),
	}
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// coverage returns actual/required within [0, limit]. A requirement of
// zero or less is fully covered.
func coverage(actual float64, required int, limit float64) float64 {
	if required <= 0 {
		return limit
	}
	return clamp(actual/float64(required), 0, limit)
}

func clamp(f, lo, hi float64) float64 {
	return max(lo, min(f, hi))
}
