// Package insight derives contextual observations from recorded answers.
//
// Detection runs after every recorded answer. Each rule declares the
// answer keys it watches; only rules watching the key that was just
// recorded are evaluated, so an observation appears once per answer that
// triggers it. Results are appended by the caller and never retracted.
package insight

import (
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
)

// Rule turns a set of answers into at most one insight.
type Rule struct {
	// Type is the insight_type tag of emitted insights.
	Type string
	// Triggers lists the answer keys whose recording evaluates the rule.
	Triggers []string
	// Urgency is the risk level of emitted insights.
	Urgency audit.RiskLevel
	// Norms are the regulatory references cited by emitted insights.
	Norms []string
	// Check returns the insight message, or ok=false when the rule does
	// not apply. key is the answer that was just recorded.
	Check func(key string, answers *audit.AnswerMap, now time.Time) (message string, ok bool)
}

// watches reports whether recording key evaluates the rule.
func (r Rule) watches(key string) bool {
	for _, k := range r.Triggers {
		if k == key {
			return true
		}
	}
	return false
}

// Detector evaluates a fixed, ordered rule table.
type Detector struct {
	rules []Rule
}

// NewDetector creates a Detector over rules. With no rules, the default
// table from Rules is used.
func NewDetector(rules ...Rule) *Detector {
	if len(rules) == 0 {
		rules = Rules()
	}
	return &Detector{rules: rules}
}

// Detect returns the insights triggered by recording key, in rule order.
func (d *Detector) Detect(key string, answers *audit.AnswerMap, now time.Time) []audit.ContextualInsight {
	var out []audit.ContextualInsight
	for _, r := range d.rules {
		if !r.watches(key) {
			continue
		}
		msg, ok := r.Check(key, answers, now)
		if !ok {
			continue
		}
		out = append(out, audit.ContextualInsight{
			InsightType:  r.Type,
			Message:      msg,
			Urgency:      r.Urgency,
			RelatedNorms: append([]string(nil), r.Norms...),
			SourceKey:    key,
		})
	}
	return out
}

// Detect runs the default rule table.
func Detect(key string, answers *audit.AnswerMap, now time.Time) []audit.ContextualInsight {
	return defaultDetector.Detect(key, answers, now)
}

var defaultDetector = NewDetector()
