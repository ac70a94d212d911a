package interview

import (
	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// FollowUpRule injects a follow-up question after a matching answer.
type FollowUpRule struct {
	// Key is the answered question the rule listens to.
	Key string
	// Ask is the key of the follow-up question in the catalog.
	Ask string
	// Match receives the normalized raw answer and the stored value.
	Match func(normalized string, value any) bool
}

// kitchenWords mark a building type with a professional kitchen.
var kitchenWords = []string{"restaurant", "cuisine", "brasserie", "cantine", "restauration"}

// followUpRules is evaluated in order after each recorded answer.
var followUpRules = []FollowUpRule{
	{
		Key: catalog.KeyBuildingType,
		Ask: catalog.KeyKitchenSuppression,
		Match: func(normalized string, value any) bool {
			s, _ := value.(string)
			text := normalized + " " + catalog.Normalize(s)
			for _, w := range kitchenWords {
				if catalog.ContainsWord(text, w) {
					return true
				}
			}
			return false
		},
	},
	{
		Key: catalog.KeyConstructionMaterials,
		Ask: catalog.KeyWoodFireTreatment,
		Match: func(normalized string, value any) bool {
			names, _ := value.([]string)
			for _, n := range names {
				if n == catalog.MaterialWood {
					return true
				}
			}
			return catalog.ContainsWord(normalized, "bois")
		},
	},
	{
		Key: catalog.KeyMaxOccupancy,
		Ask: catalog.KeyCentralizedAlarm,
		Match: func(_ string, value any) bool {
			n, ok := number(value)
			return ok && n > catalog.CentralizedAlarmOccupancy
		},
	},
	{
		Key: catalog.KeyFloors,
		Ask: catalog.KeyPermanentSecurityService,
		Match: func(_ string, value any) bool {
			n, ok := number(value)
			return ok && n > catalog.IGHFloorThreshold
		},
	},
}

// FollowUps returns the follow-up questions triggered by answering key
// with raw, parsed as value. It has no side effects.
func FollowUps(key, raw string, value any) []audit.AuditQuestion {
	normalized := catalog.Normalize(raw)
	var out []audit.AuditQuestion
	for _, r := range followUpRules {
		if r.Key != key || !r.Match(normalized, value) {
			continue
		}
		if q, ok := catalog.FollowUp(r.Ask); ok {
			out = append(out, q)
		}
	}
	return out
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
