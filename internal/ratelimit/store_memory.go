package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps timestamps in process memory. It is safe for
// concurrent use; the window is not shared with other processes.
type MemoryStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	// longest is the widest window any Hit has used; Sweep never prunes
	// inside it.
	longest time.Duration
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hits: make(map[string][]time.Time)}
}

// Hit implements [Store].
func (s *MemoryStore) Hit(_ context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.longest = max(s.longest, window)
	timestamps := prune(s.hits[key], now.Add(-window))
	if len(timestamps) >= limit {
		s.hits[key] = timestamps
		return false, len(timestamps), nil
	}

	timestamps = append(timestamps, now)
	s.hits[key] = timestamps
	return true, len(timestamps), nil
}

// Sweep drops timestamps at or before now-window for every identifier and
// forgets identifiers left with none. A window shorter than one already
// passed to Hit is widened to it, so per-route policies keep their history.
// It returns the number of identifiers removed.
func (s *MemoryStore) Sweep(now time.Time, window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-max(window, s.longest))
	removed := 0
	for key, timestamps := range s.hits {
		kept := prune(timestamps, cutoff)
		if len(kept) == 0 {
			delete(s.hits, key)
			removed++
			continue
		}
		s.hits[key] = kept
	}
	return removed
}

// Len returns the number of tracked identifiers.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hits)
}

// prune returns the suffix of ordered timestamps strictly after cutoff.
func prune(timestamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(timestamps) && !timestamps[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return timestamps
	}
	kept := make([]time.Time, len(timestamps)-i)
	copy(kept, timestamps[i:])
	return kept
}
