package profiles

import (
	"context"
	"errors"
	"strings"

	"github.com/adaptfit/macrohub/internal/engine"
	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/adaptfit/macrohub/internal/userctx"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("profile not found")
	ErrUnauthorized = errors.New("no authenticated user")
)

// Service содержит бизнес-логику профиля тела
type Service struct {
	storage storage.ProfilesStorage
}

// NewService создаёт новый сервис
func NewService(st storage.ProfilesStorage) *Service {
	return &Service{storage: st}
}

// GetProfile возвращает профиль текущего пользователя
func (s *Service) GetProfile(ctx context.Context) (*ProfileDTO, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.storage.GetBodyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	dto := toDTO(*profile)
	return &dto, nil
}

// UpsertProfile validates the payload against the calculator's hard
// bounds and writes it as the user's single body profile.
func (s *Service) UpsertProfile(ctx context.Context, req UpdateProfileRequest) (*ProfileDTO, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := engine.Profile{
		WeightLB:      req.WeightLB,
		HeightIn:      req.HeightIn,
		Age:           req.Age,
		Sex:           engine.Sex(strings.ToLower(strings.TrimSpace(req.Sex))),
		ActivityLevel: engine.ActivityLevel(strings.ToLower(strings.TrimSpace(req.ActivityLevel))),
		Goal:          engine.Goal(strings.ToLower(strings.TrimSpace(req.Goal))),
		Intensity:     engine.Intensity(strings.ToLower(strings.TrimSpace(req.Intensity))),
		PreferredUnit: engine.Unit(strings.ToLower(strings.TrimSpace(req.PreferredUnit))),
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.storage.UpsertBodyProfile(ctx, &storage.BodyProfile{
		UserID:        userID,
		WeightLB:      p.WeightLB,
		HeightIn:      p.HeightIn,
		Age:           p.Age,
		Sex:           string(p.Sex),
		ActivityLevel: string(p.ActivityLevel),
		Goal:          string(p.Goal),
		Intensity:     string(p.Intensity),
		PreferredUnit: string(p.PreferredUnit),
	})
	if err != nil {
		return nil, err
	}

	dto := toDTO(*stored)
	return &dto, nil
}

// toDTO конвертирует storage.BodyProfile в ProfileDTO
func toDTO(p storage.BodyProfile) ProfileDTO {
	return ProfileDTO{
		UserID:        p.UserID,
		WeightLB:      p.WeightLB,
		HeightIn:      p.HeightIn,
		Age:           p.Age,
		Sex:           p.Sex,
		ActivityLevel: p.ActivityLevel,
		Goal:          p.Goal,
		Intensity:     p.Intensity,
		PreferredUnit: p.PreferredUnit,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
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
