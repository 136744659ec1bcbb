// Package corpus holds the in-memory retrieval corpus. Membership is
// monotonic within a process lifetime: entries are only ever appended, never
// removed or mutated.
package corpus

import "sync"

// Entry is one indexed document with its vector representation. Index
// position in the corpus doubles as the document's retrieval handle.
type Entry struct {
	Text   string
	Vector []float32
}

// Store is an append-only, concurrency-safe corpus. Readers never observe a
// partially appended batch.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewStore creates an empty corpus.
func NewStore() *Store {
	return &Store{}
}

// Append adds a batch of entries in order. The whole batch becomes visible
// atomically. No-op on empty input.
func (s *Store) Append(entries []Entry) {
	if len(entries) == 0 {
		return
	}
	s.mu.Lock()
	s.entries = append(s.entries, entries...)
	s.mu.Unlock()
}

// Snapshot returns the current corpus contents. Entries are append-only and
// never mutated, so sharing the backing array with concurrent appends is safe.
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[:len(s.entries):len(s.entries)]
}

// Len reports the number of indexed entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
