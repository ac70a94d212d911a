// Package session maps session ids to interview states.
//
// Each state is reached only through Registry.With, which holds that
// session's lock for the duration of the call. Different sessions never
// share a lock. When a Store is configured every successful call is
// written through as a snapshot, and sessions missing from memory are
// restored from it on first access.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/HendryAvila/flameo/internal/interview"
)

var (
	// ErrNotFound is returned for an unknown session id.
	ErrNotFound = errors.New("session not found")

	// ErrLimit is returned when the registry is full, whether a session
	// is created or restored from the store.
	ErrLimit = errors.New("too many open sessions")
)

type entry struct {
	mu      sync.Mutex
	state   *interview.State
	deleted bool
}

// Registry owns every open interview.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	store    Store
	max      int
	logger   *slog.Logger
}

// Options configures a Registry. A nil Store keeps sessions in memory
// only; MaxSessions <= 0 means no limit.
type Options struct {
	Store       Store
	MaxSessions int
	Logger      *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions: make(map[string]*entry),
		store:    opts.Store,
		max:      opts.MaxSessions,
		logger:   logger,
	}
}

// Create starts a fresh interview and returns its id.
func (r *Registry) Create() (string, error) {
	return r.add(interview.New())
}

// Adopt registers an existing state (e.g. an imported snapshot) under a
// new id.
func (r *Registry) Adopt(s *interview.State) (string, error) {
	return r.add(s)
}

func (r *Registry) add(s *interview.State) (string, error) {
	r.mu.Lock()
	if r.max > 0 && len(r.sessions) >= r.max {
		r.mu.Unlock()
		return "", fmt.Errorf("%w (max %d)", ErrLimit, r.max)
	}
	id := uuid.NewString()
	e := &entry{state: s}
	r.sessions[id] = e
	r.mu.Unlock()

	e.mu.Lock()
	r.persist(id, e.state)
	e.mu.Unlock()
	return id, nil
}

// With runs fn on the state of session id while holding its lock.
func (r *Registry) With(id string, fn func(*interview.State) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := fn(e.state); err != nil {
		return err
	}
	r.persist(id, e.state)
	return nil
}

// Replace swaps the state of an existing session for s.
func (r *Registry) Replace(id string, s *interview.State) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.state = s
	r.persist(id, e.state)
	return nil
}

// Reset discards every answer of session id and restarts its interview.
func (r *Registry) Reset(id string) error {
	return r.Replace(id, interview.New())
}

// Delete forgets session id, in memory and in the store. It waits for a
// call already running on the session; later calls see ErrNotFound.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	e, inMemory := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if inMemory {
		e.mu.Lock()
		e.deleted = true
		e.mu.Unlock()
	}

	if r.store == nil {
		if !inMemory {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil
	}
	if !inMemory {
		if _, err := r.store.Load(id); err != nil {
			return err
		}
	}
	return r.store.Delete(id)
}

// IDs lists the sessions currently held in memory, sorted.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of sessions held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// lookup returns the entry of id, restoring it from the store when it is
// not in memory. The store is read without holding r.mu.
func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		return e, nil
	}
	if r.store == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	data, err := r.store.Load(id)
	if err != nil {
		return nil, err
	}
	s, err := interview.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("restoring session %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[id]; ok {
		return e, nil
	}
	if r.max > 0 && len(r.sessions) >= r.max {
		return nil, fmt.Errorf("%w (max %d)", ErrLimit, r.max)
	}
	e = &entry{state: s}
	r.sessions[id] = e
	r.logger.Debug("session restored from store", "session", id)
	return e, nil
}

// persist writes s through to the store. Failures are logged, not
// returned: the in-memory state stays authoritative.
func (r *Registry) persist(id string, s *interview.State) {
	if r.store == nil {
		return
	}
	data, err := interview.EncodeSnapshot(s)
	if err == nil {
		err = r.store.Save(id, data)
	}
	if err != nil {
		r.logger.Warn("session not persisted", "session", id, "error", err)
	}
}
