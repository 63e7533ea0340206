// Package store holds the session entity store: the single long-lived
// owner of aggregation results, keyed by entity address. Collectors
// write whole sections; readers get the latest merged snapshot. Nothing
// here survives the process, there is no persistence below this layer.
package store

import (
	"sync"

	"github.com/dexwatch/stats-api/models"
)

// GlobalKey keys the exchange-wide aggregate in the global store.
const GlobalKey = "global"

type mergeable[T any] interface {
	Merge(T) T
}

// Store is a concurrency-safe map from entity address to aggregate.
// Put shallow-merges section-wise via the aggregate's own Merge, so a
// collector can land its stats while another lands the chart for the
// same key without either clobbering the other's sections.
type Store[T mergeable[T]] struct {
	mu sync.RWMutex
	m  map[string]T
}

func New[T mergeable[T]]() *Store[T] {
	return &Store[T]{m: map[string]T{}}
}

// Get returns the aggregate for key, or false when nothing has been
// stored yet. Callers treat false as "fetch and aggregate now".
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

// Put merges partial into the stored aggregate for key, replacing the
// stored value atomically. A key seen for the first time stores partial
// as is.
func (s *Store[T]) Put(key string, partial T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.m[key]; ok {
		s.m[key] = cur.Merge(partial)
		return
	}
	s.m[key] = partial
}

// Entry is one key's payload in a batch put.
type Entry[T any] struct {
	Key  string
	Data T
}

// PutBatch applies Put for every entry under a single lock.
func (s *Store[T]) PutBatch(entries []Entry[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if cur, ok := s.m[e.Key]; ok {
			s.m[e.Key] = cur.Merge(e.Data)
			continue
		}
		s.m[e.Key] = e.Data
	}
}

// Keys returns the stored keys in no particular order.
func (s *Store[T]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}

// Len reports the number of stored entities.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Stores bundles the three entity-kind stores one collection session
// writes into.
type Stores struct {
	Global *Store[*models.GlobalAggregate]
	Pairs  *Store[*models.PairAggregate]
	Tokens *Store[*models.TokenAggregate]
}

func NewStores() *Stores {
	return &Stores{
		Global: New[*models.GlobalAggregate](),
		Pairs:  New[*models.PairAggregate](),
		Tokens: New[*models.TokenAggregate](),
	}
}
