package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// memoryStore backs tests and ephemeral runs. Same semantics as the
// sqlite driver: upsert by id, logical delete by clearing observed.
type memoryStore struct {
	mu        sync.Mutex
	holidays  map[string]HolidayRecord
	decisions []DecisionEntry
}

func newMemory() *memoryStore {
	return &memoryStore{holidays: make(map[string]HolidayRecord)}
}

func (s *memoryStore) Close() error { return nil }

func (s *memoryStore) UpsertHoliday(_ context.Context, h HolidayRecord) error {
	if h.ID == "" {
		return fmt.Errorf("holiday id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.holidays[h.ID]; ok && h.CreatedAt.IsZero() {
		h.CreatedAt = prev.CreatedAt
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	s.holidays[h.ID] = h
	return nil
}

func (s *memoryStore) ListHolidays(_ context.Context) ([]HolidayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HolidayRecord, 0, len(s.holidays))
	for _, h := range s.holidays {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *memoryStore) DeactivateHoliday(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.holidays[id]
	if !ok {
		return fmt.Errorf("holiday %q not found", id)
	}
	h.Observed = false
	s.holidays[id] = h
	return nil
}

func (s *memoryStore) AppendDecision(_ context.Context, e DecisionEntry) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, e)
	return nil
}

func (s *memoryStore) PruneDecisions(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.decisions[:0]
	var pruned int64
	for _, e := range s.decisions {
		if e.At.Before(before) {
			pruned++
			continue
		}
		kept = append(kept, e)
	}
	s.decisions = kept
	return pruned, nil
}
