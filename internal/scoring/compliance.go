package scoring

import (
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// Compliance component weights, in points.
const (
	PointsExtinguishers = 25.0
	PointsDetectors     = 20.0
	PointsExits         = 15.0
	PointsMaintenance   = 15.0
	PointsEvacuation    = 10.0
	PointsTraining      = 10.0
	PointsAlarm         = 5.0
	PointsSprinkler     = 10.0
)

// Compliance returns the 0-100 compliance score: achieved points over the
// points of every component whose inputs are known.
func Compliance(a *audit.AnswerMap, now time.Time) float64 {
	var achieved, possible float64

	equipment := []struct {
		key      string
		required func(*audit.AnswerMap) (int, bool)
		points   float64
	}{
		{catalog.KeyFireExtinguishers, catalog.RequiredExtinguishers, PointsExtinguishers},
		{catalog.KeySmokeDetectors, catalog.RequiredDetectors, PointsDetectors},
		{catalog.KeyEmergencyExits, catalog.RequiredExits, PointsExits},
	}
	for _, e := range equipment {
		actual, ok := a.Number(e.key)
		required, okReq := e.required(a)
		if !ok || !okReq {
			continue
		}
		possible += e.points
		achieved += e.points * coverage(actual, required, 1)
	}

	if days, ok := catalog.DaysSince(a, catalog.KeyLastInspection, now); ok {
		possible += PointsMaintenance
		if days <= catalog.MaintenanceMaxAgeDays {
			achieved += PointsMaintenance
		}
	}

	if plan, ok := a.Bool(catalog.KeyEvacuationPlan); ok {
		possible += PointsEvacuation
		if plan {
			achieved += PointsEvacuation
		}
	}

	if sessions, ok := a.Number(catalog.KeyTrainingSessions); ok {
		possible += PointsTraining
		switch {
		case sessions >= 2:
			achieved += PointsTraining
		case sessions >= 1:
			achieved += PointsTraining / 2
		}
	}

	if alarm, ok := a.Bool(catalog.KeyAlarmSystem); ok {
		possible += PointsAlarm
		if alarm {
			achieved += PointsAlarm
		}
	}
	if sprinkler, ok := a.Bool(catalog.KeySprinklerSystem); ok {
		possible += PointsSprinkler
		if sprinkler {
			achieved += PointsSprinkler
		}
	}

	if possible == 0 {
		return 0
	}
	return round1(clamp(100*achieved/possible, 0, 100))
}
