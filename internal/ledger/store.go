// Package ledger implements the per-user budgeting state and the chat
// command interpreter that mutates it.
package ledger

import (
	"hash/fnv"
	"sync"
	"time"

	"gullak/internal/cache"
	"gullak/internal/core"
)

const (
	// DefaultCapacity bounds how many users' ledgers stay resident.
	DefaultCapacity = 1000
	// DefaultTTL evicts a ledger not touched for a week.
	DefaultTTL = 7 * 24 * time.Hour

	lockStripes = 64
)

// Store keeps one ledger per user in a capacity-bounded, TTL-expiring
// cache. Ledgers are created empty on first access and silently dropped
// on expiry or LRU eviction; this is a soft cache, not durable storage.
//
// Update serializes read-modify-write per user via striped locks, so two
// concurrent commands for the same user can never interleave, while
// unrelated users proceed in parallel.
type Store struct {
	cache *cache.LRUCache[*core.Ledger]
	locks [lockStripes]sync.Mutex
}

// NewStore creates a store holding at most capacity users, each expiring
// ttl after last access. Zero or negative arguments fall back to defaults.
func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: cache.New[*core.Ledger](capacity, ttl)}
}

// Get returns the user's ledger, creating and storing an empty one if
// absent (or expired). The access refreshes the eviction timer.
func (s *Store) Get(userID string) *core.Ledger {
	if l, ok := s.cache.Get(userID); ok {
		return l
	}
	l := core.NewLedger()
	s.cache.Set(userID, l)
	return l
}

// Put replaces the stored ledger and refreshes the eviction timer.
func (s *Store) Put(userID string, l *core.Ledger) {
	s.cache.Set(userID, l)
}

// Update runs fn against the user's ledger under that user's lock stripe
// and writes the ledger back when fn succeeds. fn must not mutate the
// ledger on the error path; commands validate fully before touching state.
func (s *Store) Update(userID string, fn func(*core.Ledger) error) error {
	mu := s.stripe(userID)
	mu.Lock()
	defer mu.Unlock()

	l := s.Get(userID)
	if err := fn(l); err != nil {
		return err
	}
	s.Put(userID, l)
	return nil
}

func (s *Store) stripe(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Len reports how many ledgers are currently resident.
func (s *Store) Len() int {
	return s.cache.Len()
}

// StartCleanup begins periodic expiry of untouched ledgers.
func (s *Store) StartCleanup(interval time.Duration) {
	s.cache.StartCleanup(interval)
}

// Stop terminates background cleanup.
func (s *Store) Stop() {
	s.cache.Stop()
}
