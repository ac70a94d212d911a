package gate

import (
	"errors"
	"strings"
)

// ViolationType enumerates the consistency checks.
type ViolationType string

const (
	ViolationRoomArea        ViolationType = "room_area_exceeds_building"
	ViolationDensity         ViolationType = "occupancy_density"
	ViolationNoExits         ViolationType = "no_emergency_exits"
	ViolationNoExtinguishers ViolationType = "no_extinguishers"
)

// Violation is one failed check.
type Violation struct {
	Type   ViolationType `json:"type"`
	Reason string        `json:"reason"`
}

// Config holds the gate thresholds.
type Config struct {
	RoomAreaFactor          float64 // sum of room sizes may reach this multiple of the building size
	MaxDensity              float64 // persons per m²
	ExtinguisherWarningArea float64 // m² above which zero extinguishers is worth a warning
}

// DefaultConfig returns the audit's standard thresholds.
func DefaultConfig() Config {
	return Config{
		RoomAreaFactor:          1.5,
		MaxDensity:              10,
		ExtinguisherWarningArea: 50,
	}
}

// Report is the outcome of a gate run.
type Report struct {
	Fatal    []Violation `json:"fatal,omitempty"`
	Warnings []Violation `json:"warnings,omitempty"`
}

// OK reports whether no fatal violation was found.
func (r Report) OK() bool { return len(r.Fatal) == 0 }

// ErrInconsistent is matched by every *FatalError.
var ErrInconsistent = errors.New("inconsistent audit answers")

// FatalError carries the fatal violations that blocked scoring.
type FatalError struct {
	Violations []Violation
}

func (e *FatalError) Error() string {
	reasons := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		reasons[i] = v.Reason
	}
	return ErrInconsistent.Error() + ": " + strings.Join(reasons, "; ")
}

func (e *FatalError) Unwrap() error { return ErrInconsistent }
