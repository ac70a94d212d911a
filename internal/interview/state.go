// Package interview drives one audit session: which question comes next,
// what has been answered, and what has been observed so far.
//
// A State is owned by a single caller at a time. It performs no locking;
// the session layer serializes access per session.
package interview

import (
	"errors"
	"fmt"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
	"github.com/HendryAvila/flameo/internal/insight"
	"github.com/HendryAvila/flameo/internal/validate"
)

// timeNow is a package-level variable for testability.
// It dates insight detection (maintenance age).
var timeNow = time.Now

var (
	// ErrComplete is returned when an answer is submitted after the last
	// question.
	ErrComplete = errors.New("interview is complete")
	// ErrUnknownQuestion is returned for keys outside the catalog.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrNotAnswered is returned when correcting a question that was never
	// reached.
	ErrNotAnswered = errors.New("question not answered yet")
)

// State is the interview aggregate: a cursor into the primary catalog, a
// queue of follow-up questions, the answers and the insights.
//
// complete is true exactly when the cursor is past the catalog and the
// queue is empty. Once reached it never reverts.
type State struct {
	primaryIndex int
	queue        []audit.AuditQuestion
	answers      *audit.AnswerMap
	insights     []audit.ContextualInsight
	skipped      []string
	complete     bool
	detector     *insight.Detector
}

// New starts an interview at the first catalog question.
func New() *State {
	return &State{
		answers:  audit.NewAnswerMap(),
		detector: insight.NewDetector(),
	}
}

// --- Accessors ---

// CurrentQuestion returns the head of the follow-up queue, else the
// primary question under the cursor. ok is false once the interview is
// complete.
func (s *State) CurrentQuestion() (audit.AuditQuestion, bool) {
	if len(s.queue) > 0 {
		return s.queue[0], true
	}
	return catalog.At(s.primaryIndex)
}

// Complete reports whether every question has been handled.
func (s *State) Complete() bool { return s.complete }

// PrimaryIndex returns the catalog cursor.
func (s *State) PrimaryIndex() int { return s.primaryIndex }

// Answers returns a copy of the recorded answers.
func (s *State) Answers() *audit.AnswerMap { return s.answers.Clone() }

// Insights returns a copy of the insights in detection order.
func (s *State) Insights() []audit.ContextualInsight {
	return cloneInsights(s.insights)
}

// Pending returns a copy of the follow-up queue.
func (s *State) Pending() []audit.AuditQuestion {
	return append([]audit.AuditQuestion(nil), s.queue...)
}

// Skipped returns the optional questions left blank, in order.
func (s *State) Skipped() []string {
	return append([]string(nil), s.skipped...)
}

// Progress reports how many primary questions are behind the cursor.
func (s *State) Progress() (done, total int) {
	total = catalog.Len()
	done = s.primaryIndex
	if done > total {
		done = total
	}
	return done, total
}

// --- Transitions ---

// RecordAnswer stores an already validated value and appends the
// insights it triggers. The error only reports a value of a type the
// answer map cannot hold, which validated values never are.
func (s *State) RecordAnswer(key string, value any) ([]audit.ContextualInsight, error) {
	if err := s.answers.Set(key, value); err != nil {
		return nil, fmt.Errorf("recording answer: %w", err)
	}
	s.unskip(key)
	found := s.detector.Detect(key, s.answers, timeNow())
	s.insights = append(s.insights, found...)
	return cloneInsights(found), nil
}

// Advance moves past the current question and reports whether the
// interview is now complete.
//
// A settled queue head (answered or skipped) is popped without moving the
// cursor. Otherwise the cursor moves only past a settled primary question;
// follow-ups it queued are asked next. With nothing settled, Advance is a
// no-op.
func (s *State) Advance() bool {
	if s.complete {
		return true
	}
	if len(s.queue) > 0 && s.settled(s.queue[0].Key) {
		s.queue = s.queue[1:]
	} else if s.primaryIndex < catalog.Len() && s.settled(primaryKey(s.primaryIndex)) {
		s.primaryIndex++
	}
	if s.primaryIndex >= catalog.Len() && len(s.queue) == 0 {
		s.complete = true
	}
	return s.complete
}

// AddDynamicQuestion queues a follow-up question. Questions already
// answered or already queued are ignored. It never changes Complete.
func (s *State) AddDynamicQuestion(q audit.AuditQuestion) {
	if s.complete || s.answers.Has(q.Key) {
		return
	}
	for _, p := range s.queue {
		if p.Key == q.Key {
			return
		}
	}
	s.queue = append(s.queue, q)
}

// markSkipped records that an optional question was left blank.
func (s *State) markSkipped(key string) {
	for _, k := range s.skipped {
		if k == key {
			return
		}
	}
	s.skipped = append(s.skipped, key)
}

func (s *State) unskip(key string) {
	for i, k := range s.skipped {
		if k == key {
			s.skipped = append(s.skipped[:i], s.skipped[i+1:]...)
			return
		}
	}
}

func (s *State) settled(key string) bool {
	if s.answers.Has(key) {
		return true
	}
	for _, k := range s.skipped {
		if k == key {
			return true
		}
	}
	return false
}

func primaryKey(i int) string {
	q, _ := catalog.At(i)
	return q.Key
}

func cloneInsights(in []audit.ContextualInsight) []audit.ContextualInsight {
	if in == nil {
		return nil
	}
	out := make([]audit.ContextualInsight, len(in))
	for i, it := range in {
		it.RelatedNorms = append([]string(nil), it.RelatedNorms...)
		out[i] = it
	}
	return out
}

// --- Answer flow ---

// SubmitResult describes what happened to one submitted answer.
type SubmitResult struct {
	Question  audit.AuditQuestion       `json:"question"`
	Result    validate.Result           `json:"result"`
	Insights  []audit.ContextualInsight `json:"insights,omitempty"`
	FollowUps []audit.AuditQuestion     `json:"follow_ups,omitempty"`
	Next      *audit.AuditQuestion      `json:"next,omitempty"`
	Complete  bool                      `json:"complete"`
}

// Submit validates raw against the current question. An accepted answer
// is recorded, its follow-ups are queued and the interview advances. A
// rejected answer changes nothing; the same question stays current.
func (s *State) Submit(raw string) (SubmitResult, error) {
	q, ok := s.CurrentQuestion()
	if !ok {
		return SubmitResult{}, ErrComplete
	}

	res := validate.Validate(q, raw, s.answers)
	out := SubmitResult{Question: q, Result: res}
	if !res.OK() {
		out.Next = &q
		return out, nil
	}

	if res.Skipped() {
		s.markSkipped(q.Key)
	} else {
		found, err := s.RecordAnswer(q.Key, res.Value)
		if err != nil {
			return SubmitResult{}, err
		}
		out.Insights = found
		for _, f := range FollowUps(q.Key, raw, res.Value) {
			before := len(s.queue)
			s.AddDynamicQuestion(f)
			if len(s.queue) > before {
				out.FollowUps = append(out.FollowUps, f)
			}
		}
	}

	out.Complete = s.Advance()
	if next, ok := s.CurrentQuestion(); ok {
		out.Next = &next
	}
	return out, nil
}

// Correct re-validates a previously handled question with a new answer
// and overwrites the stored value. The cursor does not move and no
// follow-ups are queued; insight detection runs again and appends.
// A rejected correction leaves the stored value in place.
func (s *State) Correct(key, raw string) (validate.Result, []audit.ContextualInsight, error) {
	q, ok := catalog.Lookup(key)
	if !ok {
		return validate.Result{}, nil, fmt.Errorf("%w: %q", ErrUnknownQuestion, key)
	}
	if !s.settled(key) {
		return validate.Result{}, nil, fmt.Errorf("%w: %q", ErrNotAnswered, key)
	}

	res := validate.Validate(q, raw, s.answers)
	if !res.OK() {
		return res, nil, nil
	}
	if res.Skipped() {
		s.answers.Delete(key)
		s.markSkipped(key)
		return res, nil, nil
	}
	found, err := s.RecordAnswer(key, res.Value)
	if err != nil {
		return validate.Result{}, nil, err
	}
	return res, found, nil
}
