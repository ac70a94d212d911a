// Package validate turns a raw text answer into a typed value.
//
// Validation never fails with an error: every outcome, including a
// rejection, is a Result value carrying a user-facing message. Rejected
// answers leave the interview where it is so the same question can be
// asked again.
package validate

// Outcome classifies a validation result.
type Outcome int

const (
	// Accepted means Value holds the parsed answer.
	Accepted Outcome = iota
	// AcceptedWithWarning means Value is usable and Warning explains a concern.
	AcceptedWithWarning
	// Rejected means Reason explains what to fix.
	Rejected
)

// String returns a lower-case name for logs and tool output.
func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case AcceptedWithWarning:
		return "accepted_with_warning"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Result is the outcome of validating one answer.
//
// An accepted Result with a nil Value is a skipped optional question:
// nothing is recorded for it.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Value   any     `json:"value,omitempty"`
	Warning string  `json:"warning,omitempty"`
	Reason  string  `json:"reason,omitempty"`
}

// Accept builds an Accepted result.
func Accept(v any) Result {
	return Result{Outcome: Accepted, Value: v}
}

// Warn builds an AcceptedWithWarning result.
func Warn(v any, warning string) Result {
	return Result{Outcome: AcceptedWithWarning, Value: v, Warning: warning}
}

// Reject builds a Rejected result.
func Reject(reason string) Result {
	return Result{Outcome: Rejected, Reason: reason}
}

// OK reports whether the answer was accepted, with or without warning.
func (r Result) OK() bool {
	return r.Outcome != Rejected
}

// Skipped reports whether an optional question was skipped.
func (r Result) Skipped() bool {
	return r.OK() && r.Value == nil
}

// withWarning upgrades an accepted result to carry a warning. Rejections
// are returned unchanged; existing warnings are joined.
func (r Result) withWarning(warning string) Result {
	if !r.OK() || warning == "" {
		return r
	}
	if r.Warning != "" {
		warning = r.Warning + " " + warning
	}
	return Warn(r.Value, warning)
}
