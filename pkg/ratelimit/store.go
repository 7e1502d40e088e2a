// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is the default Store: per-key timestamp slices guarded by one
// mutex. State is process-local; replicas each enforce their own budget.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Take(key string, limit int, window time.Duration) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	kept := s.windows[key][:0]
	for _, ts := range s.windows[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= limit {
		s.windows[key] = kept
		return false, len(kept)
	}

	s.windows[key] = append(kept, now)
	return true, len(kept) + 1
}
