package dashboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/padangco/seagreen/engine"
	"github.com/padangco/seagreen/filter"
)

// Session is one user's dashboard: a filter plus the snapshot of every view
// for its current selection.
type Session struct {
	ID string

	d      *Dispatcher
	filter *filter.Filter
	unsub  func()

	mu       sync.Mutex // serialises mutations
	closed   bool
	stateMu  sync.RWMutex
	snap     Snapshot
	lastSeen time.Time
}

// NewSession subscribes d to a fresh filter and computes the initial snapshot.
func NewSession(id string, d *Dispatcher) *Session {
	s := &Session{ID: id, d: d, filter: filter.New(), lastSeen: time.Now()}
	s.snap = d.Recompute(s.filter.Current())
	s.unsub = s.filter.Subscribe(func(sel filter.Selection) {
		snap := d.Recompute(sel)
		s.stateMu.Lock()
		s.snap = snap
		s.stateMu.Unlock()
	})
	return s
}

// Selection returns the current selection.
func (s *Session) Selection() filter.Selection { return s.filter.Current() }

// Snapshot returns the outputs for the current selection.
func (s *Session) Snapshot() Snapshot {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.snap
}

// View returns one output of the current snapshot.
func (s *Session) View(name string) (Output, error) {
	out, ok := s.Snapshot().Get(name)
	if !ok {
		return Output{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return out, nil
}

// Pass returns the base-filter pass for the current selection.
func (s *Session) Pass() *engine.Pass { return s.d.Pass(s.Selection()) }

// SetCountries replaces the selected countries and returns the new snapshot.
// Invalid input leaves the session unchanged.
func (s *Session) SetCountries(countries []string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, s.closedErr()
	}
	if err := s.filter.SetCountries(countries); err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// SetStage selects a funding stage; an empty stage clears it.
func (s *Session) SetStage(stage string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, s.closedErr()
	}
	if stage == "" {
		s.filter.ClearStage()
		return s.Snapshot(), nil
	}
	if err := s.filter.SetStage(stage); err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// Close detaches the session from the dispatcher. Later mutations fail
// with ErrSessionNotFound.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *Session) closedErr() error {
	return fmt.Errorf("%w: %s", ErrSessionNotFound, s.ID)
}

func (s *Session) touch(now time.Time) {
	s.stateMu.Lock()
	s.lastSeen = now
	s.stateMu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastSeen
}
