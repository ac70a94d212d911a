package catalog

import (
	"math"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
)

// --- Thresholds shared by validation, detection, gate and scoring ---

const (
	// DensityWarning (persons/m²) triggers a warning and a high_density insight.
	DensityWarning = 2.0
	// DensityReject (persons/m²) rejects an occupancy answer outright.
	DensityReject = 5.0
	// DensityFatal (persons/m²) fails the final consistency gate.
	DensityFatal = 10.0

	// BottleneckRatio is the occupants-per-exit level of a critical bottleneck.
	BottleneckRatio = 100.0

	// MaintenanceMaxAgeDays is the longest acceptable gap between inspections.
	MaintenanceMaxAgeDays = 365

	// ERPOccupancyThreshold is the occupancy above which public-receiving
	// establishment rules apply.
	ERPOccupancyThreshold = 19
	// IGHFloorThreshold is the floor count above which a building is treated
	// as a high-rise.
	IGHFloorThreshold = 8
	// CentralizedAlarmOccupancy is the occupancy that calls for a
	// centralized alarm.
	CentralizedAlarmOccupancy = 100
)

// Density returns maxOccupancy / buildingSize when both are known.
func Density(a *audit.AnswerMap) (float64, bool) {
	occ, okOcc := a.Number(KeyMaxOccupancy)
	size, okSize := a.Number(KeyBuildingSize)
	if !okOcc || !okSize || size <= 0 {
		return 0, false
	}
	return occ / size, true
}

// OccupantsPerExit returns maxOccupancy / max(emergencyExits, 1) when both
// are known.
func OccupantsPerExit(a *audit.AnswerMap) (float64, bool) {
	occ, okOcc := a.Number(KeyMaxOccupancy)
	exits, okExits := a.Number(KeyEmergencyExits)
	if !okOcc || !okExits {
		return 0, false
	}
	return occ / math.Max(exits, 1), true
}

// BuildingCategory derives the category from the stored building type,
// defaulting to commercial.
func BuildingCategory(a *audit.AnswerMap) Category {
	bt, ok := a.String(KeyBuildingType)
	if !ok {
		return CategoryCommercial
	}
	return CategoryFor(bt)
}

// RequiredExtinguishers returns the extinguisher requirement for the
// stored size and type.
func RequiredExtinguishers(a *audit.AnswerMap) (int, bool) {
	size, ok := a.Number(KeyBuildingSize)
	if !ok {
		return 0, false
	}
	return RequirementsFor(BuildingCategory(a)).Extinguishers.Required(size), true
}

// RequiredExits returns the emergency exit requirement.
func RequiredExits(a *audit.AnswerMap) (int, bool) {
	size, ok := a.Number(KeyBuildingSize)
	if !ok {
		return 0, false
	}
	return RequirementsFor(BuildingCategory(a)).Exits.Required(size), true
}

// RequiredDetectors returns the smoke detector requirement: the category
// table, raised to one detector per declared room.
func RequiredDetectors(a *audit.AnswerMap) (int, bool) {
	size, ok := a.Number(KeyBuildingSize)
	if !ok {
		return 0, false
	}
	required := RequirementsFor(BuildingCategory(a)).Detectors.Required(size)
	if rooms, ok := a.Int(KeyRoomCount); ok && rooms > required {
		required = rooms
	}
	return required, true
}

// DaysSince returns the whole days between a stored date answer and now.
func DaysSince(a *audit.AnswerMap, key string, now time.Time) (int, bool) {
	d, ok := a.Date(key)
	if !ok {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(d).Hours() / 24), true
}
