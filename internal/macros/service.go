package macros

import (
	"context"
	"errors"
	"time"

	"github.com/adaptfit/macrohub/internal/engine"
	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/adaptfit/macrohub/internal/userctx"
	"github.com/google/uuid"
)

// Only the trailing four weeks of entries feed the plan. Older history
// reflects a different body and a different adherence level.
const planWindowDays = 28

var (
	ErrUnauthorized  = errors.New("no authenticated user")
	ErrProfileNotSet = errors.New("profile not set up yet")
)

// Service строит адаптивный план питания
type Service struct {
	profiles storage.ProfilesStorage
	weights  storage.WeightsStorage
	now      func() time.Time
}

// NewService создаёт новый сервис
func NewService(profiles storage.ProfilesStorage, weights storage.WeightsStorage) *Service {
	return &Service{
		profiles: profiles,
		weights:  weights,
		now:      time.Now,
	}
}

// ComputePlan loads the stored profile plus the recent weight history
// and runs the full adaptive calculation.
func (s *Service) ComputePlan(ctx context.Context) (*engine.MacroPlan, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.profiles.GetBodyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrProfileNotSet
	}

	now := s.now().UTC()
	from := now.AddDate(0, 0, -planWindowDays)
	rows, err := s.weights.ListWeightEntries(ctx, userID, &from, nil, false, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]engine.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, engine.Entry{Date: r.Date, WeightLB: r.WeightLB})
	}

	profile := engine.Profile{
		WeightLB:      stored.WeightLB,
		HeightIn:      stored.HeightIn,
		Age:           stored.Age,
		Sex:           engine.Sex(stored.Sex),
		ActivityLevel: engine.ActivityLevel(stored.ActivityLevel),
		Goal:          engine.Goal(stored.Goal),
		Intensity:     engine.Intensity(stored.Intensity),
		PreferredUnit: engine.Unit(stored.PreferredUnit),
	}

	return engine.ComputePlan(profile, entries, now)
}

// CheckEntry runs the plausibility guard against the latest stored
// entry without persisting anything.
func (s *Service) CheckEntry(ctx context.Context, weight float64, unit engine.Unit) (engine.CheckResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return engine.CheckResult{}, err
	}

	latest, err := s.weights.GetLatestWeightEntry(ctx, userID)
	if err != nil {
		return engine.CheckResult{}, err
	}

	var prior *engine.Entry
	if latest != nil {
		prior = &engine.Entry{Date: latest.Date, WeightLB: latest.WeightLB}
	}

	return engine.CheckNewEntry(weight, unit, prior, false)
}

func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
	raw, ok := userctx.GetUserID(ctx)
	if !ok {
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}
