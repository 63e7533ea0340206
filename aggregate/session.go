// Package aggregate folds raw day records from the remote source into
// day-bucketed and week-bucketed series, percent changes and normalized
// transactions. Everything here is pure in-memory computation; fetching
// lives in source and composition in collector.
package aggregate

import "sync"

// Session carries aggregation state that lives for one process session:
// the day-indexed volume offset table and the latch that makes sure it's
// subtracted at most once. The offsets are a compatibility patch for a
// handful of days whose upstream volume is known to be inflated, not a
// general feature.
type Session struct {
	mu       sync.Mutex
	offsets  map[int64]float64 // UTC day start -> USD volume to subtract
	adjusted bool
}

// NewSession returns a session with the given offset table. Call once at
// process start; tests construct fresh sessions to reset the latch.
func NewSession(offsets map[int64]float64) *Session {
	s := &Session{offsets: map[int64]float64{}}
	for k, v := range offsets {
		s.offsets[k] = v
	}
	return s
}

// claimOffsets returns the offset table on the first call for a session
// and nil on every later call.
func (s *Session) claimOffsets() map[int64]float64 {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adjusted || len(s.offsets) == 0 {
		return nil
	}
	s.adjusted = true
	return s.offsets
}
