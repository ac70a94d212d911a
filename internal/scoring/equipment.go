package scoring

import (
	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// Equipment adequacy weights.
const (
	weightExtinguishers = 3.0
	weightDetectors     = 2.0
	weightAlarm         = 2.0
	weightSprinkler     = 3.0

	// coverageCap limits how much surplus equipment can make up for
	// missing equipment elsewhere.
	coverageCap = 2.0
	// detectorAreaEstimate is the m² per detector assumed when the room
	// count is unknown.
	detectorAreaEstimate = 20
)

// EquipmentAdequacy returns a 0-10 rating of the declared equipment.
// Exactly meeting every requirement rates 10.
func EquipmentAdequacy(a *audit.AnswerMap) float64 {
	var achieved, weights float64

	if n, ok := a.Number(catalog.KeyFireExtinguishers); ok {
		if required, ok := catalog.RequiredExtinguishers(a); ok {
			weights += weightExtinguishers
			achieved += weightExtinguishers * coverage(n, required, coverageCap)
		}
	}

	if n, ok := a.Number(catalog.KeySmokeDetectors); ok {
		if required, ok := detectorsForAdequacy(a); ok {
			weights += weightDetectors
			achieved += weightDetectors * coverage(n, required, coverageCap)
		}
	}

	if alarm, ok := a.Bool(catalog.KeyAlarmSystem); ok {
		weights += weightAlarm
		if alarm {
			achieved += weightAlarm
		}
	}
	if sprinkler, ok := a.Bool(catalog.KeySprinklerSystem); ok {
		weights += weightSprinkler
		if sprinkler {
			achieved += weightSprinkler
		}
	}

	if weights == 0 {
		return 0
	}
	return round1(clamp(10*achieved/weights, 0, 10))
}

// detectorsForAdequacy prefers the declared room count and falls back to
// one detector per detectorAreaEstimate m².
func detectorsForAdequacy(a *audit.AnswerMap) (int, bool) {
	if rooms, ok := a.Int(catalog.KeyRoomCount); ok && rooms > 0 {
		return rooms, true
	}
	size, ok := a.Number(catalog.KeyBuildingSize)
	if !ok {
		return 0, false
	}
	return max(1, int(size)/detectorAreaEstimate), true
}
