package memory

import (
	"context"
	"sync"
	"time"

	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/google/uuid"
)

type profilesMemoryStorage struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*storage.BodyProfile
}

func newProfilesMemoryStorage() *profilesMemoryStorage {
	return &profilesMemoryStorage{
		profiles: make(map[uuid.UUID]*storage.BodyProfile),
	}
}

func (s *profilesMemoryStorage) GetBodyProfile(ctx context.Context, userID uuid.UUID) (*storage.BodyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil // not found, return nil without error
	}

	// Return a copy
	copied := *p
	return &copied, nil
}

func (s *profilesMemoryStorage) UpsertBodyProfile(ctx context.Context, profile *storage.BodyProfile) (*storage.BodyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	existing, ok := s.profiles[profile.UserID]
	if ok {
		existing.WeightLB = profile.WeightLB
		existing.HeightIn = profile.HeightIn
		existing.Age = profile.Age
		existing.Sex = profile.Sex
		existing.ActivityLevel = profile.ActivityLevel
		existing.Goal = profile.Goal
		existing.Intensity = profile.Intensity
		existing.PreferredUnit = profile.PreferredUnit
		existing.UpdatedAt = now

		copied := *existing
		return &copied, nil
	}

	created := *profile
	created.CreatedAt = now
	created.UpdatedAt = now
	s.profiles[profile.UserID] = &created

	copied := created
	return &copied, nil
}
