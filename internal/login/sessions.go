package login

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions holds the form instances of all browser sessions, keyed by a
// random id. Each instance is independent of the others.
type Sessions struct {
	mu    sync.RWMutex
	forms map[string]*Form
	op    Operation
}

// NewSessions returns an empty registry whose forms authenticate through op.
func NewSessions(op Operation) *Sessions {
	return &Sessions{
		forms: make(map[string]*Form),
		op:    op,
	}
}

// Create registers a new idle form under a fresh id.
func (s *Sessions) Create() *Form {
	f := NewForm(uuid.NewString(), s.op)

	s.mu.Lock()
	s.forms[f.ID()] = f
	s.mu.Unlock()
	return f
}

// Get returns the form registered under id.
func (s *Sessions) Get(id string) (*Form, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[id]
	return f, ok
}

// Delete forgets the form registered under id.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	delete(s.forms, id)
	s.mu.Unlock()
}

// Len returns the number of registered forms.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forms)
}

// Prune drops forms that have not been touched for maxIdle. Forms waiting
// on their operation are kept. It returns the number of forms removed.
func (s *Sessions) Prune(now time.Time, maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, f := range s.forms {
		if f.State().InFlight() {
			continue
		}
		if now.Sub(f.idleSince()) > maxIdle {
			delete(s.forms, id)
			removed++
		}
	}
	return removed
}
