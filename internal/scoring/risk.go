package scoring

import (
	"time"
	"unicode/utf8"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// threshold is the minimum score of a risk level.
type threshold struct {
	min   int
	level audit.RiskLevel
}

// level maps a score to the first threshold it reaches. Thresholds are
// listed from most to least severe; below all of them, floor applies.
func level(score int, thresholds []threshold, floor audit.RiskLevel) audit.RiskLevel {
	for _, t := range thresholds {
		if score >= t.min {
			return t.level
		}
	}
	return floor
}

// --- Fire risk ---

var fireThresholds = []threshold{
	{8, audit.RiskVeryHigh},
	{5, audit.RiskHigh},
	{3, audit.RiskMedium},
	{1, audit.RiskLow},
}

// materialWeight is the fire score contributed by one material tag.
var materialWeight = map[audit.RiskLevel]int{
	audit.RiskMedium:   1,
	audit.RiskHigh:     3,
	audit.RiskVeryHigh: 5,
}

// detailedAreaLength is the shortest high-risk area description that
// counts as a real description rather than a token answer.
const detailedAreaLength = 10

// FireRisk scores materials, declared high-risk areas and the electrical
// installation.
func FireRisk(a *audit.AnswerMap) audit.RiskLevel {
	return level(fireScore(a), fireThresholds, audit.RiskVeryLow)
}

func fireScore(a *audit.AnswerMap) int {
	score := 0
	for _, m := range materialsOf(a) {
		score += materialWeight[effectiveRisk(a, m)]
	}
	if areas, ok := a.String(catalog.KeyHighRiskAreas); ok && utf8.RuneCountInString(areas) >= detailedAreaLength {
		score += 2
	}
	if compliant, ok := a.Bool(catalog.KeyElectricalCompliance); ok && !compliant {
		score += 3
	}
	return score
}

// effectiveRisk downgrades wood declared as fire-treated to MEDIUM.
func effectiveRisk(a *audit.AnswerMap, m catalog.Material) audit.RiskLevel {
	if m.Name == catalog.MaterialWood {
		if treated, _ := a.Bool(catalog.KeyWoodFireTreatment); treated {
			return audit.RiskMedium
		}
	}
	return m.FireRisk
}

func materialsOf(a *audit.AnswerMap) []catalog.Material {
	names, _ := a.Strings(catalog.KeyConstructionMaterials)
	var out []catalog.Material
	for _, n := range names {
		if m, ok := catalog.MaterialByName(n); ok {
			out = append(out, m)
		}
	}
	return out
}

// --- Structural risk ---

var structuralThresholds = []threshold{
	{6, audit.RiskVeryHigh},
	{4, audit.RiskHigh},
	{2, audit.RiskMedium},
	{0, audit.RiskLow},
}

// StructuralRisk scores height, footprint and construction materials.
func StructuralRisk(a *audit.AnswerMap) audit.RiskLevel {
	score := 0
	floors, hasFloors := a.Int(catalog.KeyFloors)
	switch {
	case floors > 8:
		score += 4
	case floors > 4:
		score += 2
	case floors > 2:
		score++
	}

	if size, ok := a.Number(catalog.KeyBuildingSize); ok {
		switch {
		case size > 5000:
			score += 2
		case size > 1000:
			score++
		}
	}

	resistant := false
	for _, m := range materialsOf(a) {
		if m.Name == catalog.MaterialWood && hasFloors && floors > 1 {
			score += 2
		}
		if m.Resistant {
			resistant = true
		}
	}
	if resistant {
		score--
	}

	return level(score, structuralThresholds, audit.RiskVeryLow)
}

// --- Evacuation risk ---

var evacuationThresholds = []threshold{
	{10, audit.RiskCritical},
	{7, audit.RiskVeryHigh},
	{5, audit.RiskHigh},
	{3, audit.RiskMedium},
	{1, audit.RiskLow},
}

// Drill age thresholds, in days.
const (
	drillStaleDays   = 180
	drillOverdueDays = 365
)

// EvacuationRisk scores exit capacity, height, training, the evacuation
// plan and drill recency. Missing training, plan or drill answers count
// as absent.
func EvacuationRisk(a *audit.AnswerMap, now time.Time) audit.RiskLevel {
	score := 0

	if ratio, ok := catalog.OccupantsPerExit(a); ok {
		switch {
		case ratio > 200:
			score += 5
		case ratio > 100:
			score += 3
		case ratio > 50:
			score++
		}
	}

	if floors, ok := a.Int(catalog.KeyFloors); ok && floors > 1 {
		if exits, ok := a.Int(catalog.KeyEmergencyExits); ok && exits < 2 {
			score += 3
		}
		if occ, ok := a.Number(catalog.KeyMaxOccupancy); ok && occ > 100 {
			score += 2
		}
	}

	sessions, ok := a.Number(catalog.KeyTrainingSessions)
	switch {
	case !ok || sessions == 0:
		score += 2
	case sessions < 2:
		score++
	}

	if plan, _ := a.Bool(catalog.KeyEvacuationPlan); !plan {
		score += 2
	}

	days, ok := catalog.DaysSince(a, catalog.KeyLastFireDrill, now)
	switch {
	case !ok, days > drillOverdueDays:
		score += 2
	case days > drillStaleDays:
		score++
	}

	return level(score, evacuationThresholds, audit.RiskVeryLow)
}
