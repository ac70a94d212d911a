package audit

import "fmt"

// --- Validation type enum ---

// ValidationType selects the parser applied to a raw answer. The set is
// closed; answers to a question of unknown type are always rejected.
type ValidationType string

const (
	ValidationText         ValidationType = "text"
	ValidationNumber       ValidationType = "number"
	ValidationNumberList   ValidationType = "number-list"
	ValidationDate         ValidationType = "date"
	ValidationBoolean      ValidationType = "boolean"
	ValidationBuildingType ValidationType = "enum-building-type"
	ValidationUsage        ValidationType = "enum-usage"
	ValidationMaterials    ValidationType = "materials"
)

// validationTypes is the set of allowed validation types.
var validationTypes = map[ValidationType]bool{
	ValidationText:         true,
	ValidationNumber:       true,
	ValidationNumberList:   true,
	ValidationDate:         true,
	ValidationBoolean:      true,
	ValidationBuildingType: true,
	ValidationUsage:        true,
	ValidationMaterials:    true,
}

// ValidationTypes returns every validation type.
func ValidationTypes() []ValidationType {
	return []ValidationType{
		ValidationText, ValidationNumber, ValidationNumberList, ValidationDate,
		ValidationBoolean, ValidationBuildingType, ValidationUsage, ValidationMaterials,
	}
}

// ValidateValidationType returns an error if t is not recognized.
func ValidateValidationType(t ValidationType) error {
	if !validationTypes[t] {
		return fmt.Errorf("invalid validation type %q", t)
	}
	return nil
}

// --- Core data structures ---
//
// The validate struct tags are checked when a snapshot is imported; the
// interview package registers the validationtype and risklevel rules.

// AuditQuestion is one question of the interview. Catalog questions are
// immutable; follow-up questions are built the same way at runtime.
type AuditQuestion struct {
	Key              string         `json:"key" validate:"required"`
	Text             string         `json:"text" validate:"required"`
	ValidationType   ValidationType `json:"validation_type" validate:"validationtype"`
	MinValue         *float64       `json:"min_value,omitempty"`
	MaxValue         *float64       `json:"max_value,omitempty"`
	Unit             string         `json:"unit,omitempty"`
	Required         bool           `json:"required"`
	AllowedValues    []string       `json:"allowed_values,omitempty"`
	RiskIndicators   []string       `json:"risk_indicators,omitempty"`
	ContextDependent bool           `json:"context_dependent,omitempty"`
	FollowUp         bool           `json:"follow_up,omitempty"`
}

// Bounds returns the numeric range of the question. A missing bound is
// reported as ok=false for that side.
func (q AuditQuestion) Bounds() (minValue float64, hasMin bool, maxValue float64, hasMax bool) {
	if q.MinValue != nil {
		minValue, hasMin = *q.MinValue, true
	}
	if q.MaxValue != nil {
		maxValue, hasMax = *q.MaxValue, true
	}
	return minValue, hasMin, maxValue, hasMax
}

// HasIndicator reports whether the question carries the given risk tag.
func (q AuditQuestion) HasIndicator(tag string) bool {
	for _, t := range q.RiskIndicators {
		if t == tag {
			return true
		}
	}
	return false
}

// ContextualInsight is an observation derived from two or more answers.
// Insights are append-only: once emitted they are never edited or removed.
type ContextualInsight struct {
	InsightType  string    `json:"insight_type" validate:"required"`
	Message      string    `json:"message" validate:"required"`
	Urgency      RiskLevel `json:"urgency" validate:"risklevel"`
	RelatedNorms []string  `json:"related_norms"`
	SourceKey    string    `json:"source_key,omitempty"`
}

// MaxPriorityActions caps RiskAssessment.PriorityActions.
const MaxPriorityActions = 10

// RiskAssessment is the scored result of a completed interview. It is
// recomputed from the answers on demand and never stored incrementally.
type RiskAssessment struct {
	FireRisk          RiskLevel `json:"fire_risk"`
	StructuralRisk    RiskLevel `json:"structural_risk"`
	EvacuationRisk    RiskLevel `json:"evacuation_risk"`
	EquipmentAdequacy float64   `json:"equipment_adequacy"`
	ComplianceScore   float64   `json:"compliance_score"`
	PriorityActions   []string  `json:"priority_actions"`
}
