package recouple

import (
	"fmt"
	"sync"
)

// Session owns all mutable state of an analysis run: the interaction
// pattern cache, the formula topology cache, and the maximum-rank cap.
// Independent workers use independent sessions, or share one — every
// method is safe for concurrent use, and a lost cache race costs a
// redundant recomputation, never an incorrect result.
type Session struct {
	mu       sync.Mutex
	maxRank  int
	patterns map[string]*InteractDatum
	formulas map[string]*Formula
}

// NewSession returns a Session with empty caches and the default
// maximum-rank cap.
func NewSession() *Session {
	return &Session{
		maxRank:  DefaultMaxRank,
		patterns: make(map[string]*InteractDatum),
		formulas: make(map[string]*Formula),
	}
}

// MaxRank returns the current doubled maximum tensor rank. Driver calls
// snapshot it once on entry; changing it concurrently with an in-flight
// computation affects only later calls.
func (s *Session) MaxRank() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.maxRank
}

// SetMaxRank records a new doubled maximum tensor rank. The rank of a
// physical tensor operator is a non-negative integer, so k must be an even
// non-negative doubled value; anything else is ErrMaxRank.
func (s *Session) SetMaxRank(k int) error {
	if k < 0 || k&1 == 1 {
		return fmt.Errorf("%w: %d", ErrMaxRank, k)
	}
	s.mu.Lock()
	s.maxRank = k
	s.mu.Unlock()

	return nil
}

// Reset clears both caches and restores the default rank cap. Call it when
// switching to a disjoint set of configurations, so stale entries keyed by
// reused shell-structure signatures cannot be served.
func (s *Session) Reset() {
	s.mu.Lock()
	s.maxRank = DefaultMaxRank
	s.patterns = make(map[string]*InteractDatum)
	s.formulas = make(map[string]*Formula)
	s.mu.Unlock()
}

// lookupDatum returns the cached datum for a signature, if present.
func (s *Session) lookupDatum(key string) (*InteractDatum, bool) {
	s.mu.Lock()
	d, ok := s.patterns[key]
	s.mu.Unlock()

	return d, ok
}

// storeDatum inserts a datum unless another writer got there first, and
// returns the datum that ended up cached.
func (s *Session) storeDatum(key string, d *InteractDatum) *InteractDatum {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.patterns[key]; ok {
		return prev
	}
	s.patterns[key] = d

	return d
}

// formula returns the cached Formula for a topology key, building and
// caching it on first use.
func (s *Session) formula(key string, build func() *Formula) *Formula {
	s.mu.Lock()
	if f, ok := s.formulas[key]; ok {
		s.mu.Unlock()

		return f
	}
	s.mu.Unlock()

	f := build()

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.formulas[key]; ok {
		return prev
	}
	s.formulas[key] = f

	return f
}
