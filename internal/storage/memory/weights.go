package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/google/uuid"
)

type weightsMemoryStorage struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]storage.WeightEntry // keyed by user id, kept sorted ascending by date
}

func newWeightsMemoryStorage() *weightsMemoryStorage {
	return &weightsMemoryStorage{
		entries: make(map[uuid.UUID][]storage.WeightEntry),
	}
}

func (s *weightsMemoryStorage) CreateWeightEntry(ctx context.Context, entry *storage.WeightEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now().UTC()

	list := append(s.entries[entry.UserID], *entry)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	s.entries[entry.UserID] = list

	return nil
}

func (s *weightsMemoryStorage) ListWeightEntries(ctx context.Context, userID uuid.UUID, from, to *time.Time, descending bool, limit int) ([]storage.WeightEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []storage.WeightEntry
	for _, e := range s.entries[userID] {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		out = append(out, e)
	}

	if descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (s *weightsMemoryStorage) GetLatestWeightEntry(ctx context.Context, userID uuid.UUID) (*storage.WeightEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.entries[userID]
	if len(list) == 0 {
		return nil, nil
	}

	copied := list[len(list)-1]
	return &copied, nil
}

func (s *weightsMemoryStorage) DeleteWeightEntry(ctx context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[userID]
	for i, e := range list {
		if e.ID == id {
			s.entries[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
