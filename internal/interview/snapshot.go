package interview

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// SnapshotVersion is the snapshot format written by ExportSnapshot.
const SnapshotVersion = 1

// ErrMalformedSnapshot is returned when a snapshot cannot be restored.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is the persisted form of a State.
//
// Only answers, insights and complete are required. A complete snapshot
// without a cursor is restored with the cursor past the catalog.
type Snapshot struct {
	Version      int                       `json:"version" validate:"gte=0,lte=1"`
	Answers      *audit.AnswerMap          `json:"answers" validate:"required"`
	Insights     []audit.ContextualInsight `json:"insights" validate:"dive"`
	Complete     bool                      `json:"complete"`
	PrimaryIndex int                       `json:"primary_index" validate:"gte=0"`
	DynamicQueue []audit.AuditQuestion     `json:"dynamic_queue,omitempty" validate:"dive"`
	Skipped      []string                  `json:"skipped,omitempty" validate:"dive,required"`
}

// snapshotValidate checks snapshot structure before restore.
var snapshotValidate *validator.Validate

func init() {
	snapshotValidate = validator.New()
	_ = snapshotValidate.RegisterValidation("risklevel", func(fl validator.FieldLevel) bool {
		return audit.RiskLevel(fl.Field().Int()).Valid()
	})
	_ = snapshotValidate.RegisterValidation("validationtype", func(fl validator.FieldLevel) bool {
		return audit.ValidateValidationType(audit.ValidationType(fl.Field().String())) == nil
	})
}

// ExportSnapshot captures s. The snapshot shares no memory with s.
func ExportSnapshot(s *State) Snapshot {
	return Snapshot{
		Version:      SnapshotVersion,
		Answers:      s.answers.Clone(),
		Insights:     cloneInsights(s.insights),
		Complete:     s.complete,
		PrimaryIndex: s.primaryIndex,
		DynamicQueue: s.Pending(),
		Skipped:      s.Skipped(),
	}
}

// ImportSnapshot builds a new State from snap. On error nothing is
// returned, so a caller's existing state is never half-replaced.
func ImportSnapshot(snap Snapshot) (*State, error) {
	if err := snapshotValidate.Struct(snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	for _, k := range snap.Answers.Keys() {
		q, ok := catalog.Lookup(k)
		if !ok {
			return nil, fmt.Errorf("%w: unknown answer key %q", ErrMalformedSnapshot, k)
		}
		if err := checkAnswer(q, snap.Answers); err != nil {
			return nil, fmt.Errorf("%w: answer %q: %v", ErrMalformedSnapshot, k, err)
		}
	}
	for _, k := range snap.Skipped {
		if _, ok := catalog.Lookup(k); !ok {
			return nil, fmt.Errorf("%w: unknown skipped key %q", ErrMalformedSnapshot, k)
		}
	}

	cursor := snap.PrimaryIndex
	if snap.Complete && cursor == 0 && len(snap.DynamicQueue) == 0 {
		cursor = catalog.Len()
	}
	if cursor > catalog.Len() {
		return nil, fmt.Errorf("%w: primary_index %d beyond %d questions", ErrMalformedSnapshot, cursor, catalog.Len())
	}
	exhausted := cursor >= catalog.Len() && len(snap.DynamicQueue) == 0
	if snap.Complete != exhausted {
		return nil, fmt.Errorf("%w: complete=%v does not match cursor %d and %d pending questions",
			ErrMalformedSnapshot, snap.Complete, cursor, len(snap.DynamicQueue))
	}

	s := New()
	s.answers = snap.Answers.Clone()
	s.insights = cloneInsights(snap.Insights)
	s.primaryIndex = cursor
	s.queue = append([]audit.AuditQuestion(nil), snap.DynamicQueue...)
	s.skipped = append([]string(nil), snap.Skipped...)
	s.complete = snap.Complete
	return s, nil
}

// checkAnswer verifies that the stored value of q has the shape its
// validator produces and lies within the question bounds.
func checkAnswer(q audit.AuditQuestion, answers *audit.AnswerMap) error {
	switch q.ValidationType {
	case audit.ValidationText:
		if v, ok := answers.String(q.Key); !ok || v == "" {
			return errors.New("want non-empty text")
		}
	case audit.ValidationDate:
		if _, ok := answers.Date(q.Key); !ok {
			return fmt.Errorf("want a date as %s", audit.DateLayout)
		}
	case audit.ValidationBoolean:
		if _, ok := answers.Bool(q.Key); !ok {
			return errors.New("want a boolean")
		}
	case audit.ValidationBuildingType, audit.ValidationUsage:
		v, ok := answers.String(q.Key)
		if !ok || !slices.Contains(q.AllowedValues, v) {
			return errors.New("want one of the accepted values")
		}
	case audit.ValidationNumber:
		n, ok := answers.Number(q.Key)
		if !ok {
			return errors.New("want a number")
		}
		return checkBounds(q, n)
	case audit.ValidationNumberList:
		values, ok := answers.Numbers(q.Key)
		if !ok || len(values) == 0 {
			return errors.New("want a list of numbers")
		}
		for _, n := range values {
			if err := checkBounds(q, n); err != nil {
				return err
			}
		}
	case audit.ValidationMaterials:
		names, ok := answers.Strings(q.Key)
		if !ok || len(names) == 0 {
			return errors.New("want a list of materials")
		}
		for _, name := range names {
			if _, ok := catalog.MaterialByName(name); !ok {
				return fmt.Errorf("unknown material %q", name)
			}
		}
	default:
		return fmt.Errorf("unsupported validation type %q", q.ValidationType)
	}
	return nil
}

func checkBounds(q audit.AuditQuestion, n float64) error {
	minValue, hasMin, maxValue, hasMax := q.Bounds()
	if (hasMin && n < minValue) || (hasMax && n > maxValue) {
		return fmt.Errorf("%v out of range", n)
	}
	return nil
}

// EncodeSnapshot exports s as indented JSON.
func EncodeSnapshot(s *State) ([]byte, error) {
	data, err := json.MarshalIndent(ExportSnapshot(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses JSON produced by EncodeSnapshot and restores it.
func DecodeSnapshot(data []byte) (*State, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return ImportSnapshot(snap)
}
