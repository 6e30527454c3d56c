package weights

import (
	"context"
	"errors"
	"time"

	"github.com/adaptfit/macrohub/internal/engine"
	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/adaptfit/macrohub/internal/userctx"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized  = errors.New("no authenticated user")
	ErrInvalidDate   = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrEntryNotFound = errors.New("weight entry not found")
	ErrNoEntries     = errors.New("no weight entries recorded")
)

// ListQuery — параметры выборки записей
type ListQuery struct {
	From       *time.Time
	To         *time.Time
	Descending bool
	Limit      int
}

// Service содержит бизнес-логику записей веса
type Service struct {
	storage storage.WeightsStorage
}

// NewService создаёт новый сервис
func NewService(st storage.WeightsStorage) *Service {
	return &Service{storage: st}
}

// CreateEntry runs the large-jump guard against the latest stored entry
// and persists the new one unless confirmation is required.
func (s *Service) CreateEntry(ctx context.Context, req CreateEntryRequest) (*CreateEntryResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	unit := engine.Unit(req.Unit)
	if req.Unit == "" {
		unit = engine.UnitLB
	}

	latest, err := s.storage.GetLatestWeightEntry(ctx, userID)
	if err != nil {
		return nil, err
	}

	var prior *engine.Entry
	if latest != nil {
		prior = &engine.Entry{Date: latest.Date, WeightLB: latest.WeightLB}
	}

	check, err := engine.CheckNewEntry(req.Weight, unit, prior, req.Confirmed)
	if err != nil {
		return nil, err
	}
	if check.RequiresConfirmation {
		return &CreateEntryResult{
			RequiresConfirmation: true,
			ChangeKG:             check.ChangeKG,
			Warning:              check.Warning,
		}, nil
	}

	entry := &storage.WeightEntry{
		UserID:   userID,
		Date:     date,
		WeightLB: check.WeightLB,
	}
	if err := s.storage.CreateWeightEntry(ctx, entry); err != nil {
		return nil, err
	}

	dto := toDTO(*entry)
	return &CreateEntryResult{Entry: &dto}, nil
}

// ListEntries возвращает записи пользователя
func (s *Service) ListEntries(ctx context.Context, q ListQuery) ([]EntryDTO, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.storage.ListWeightEntries(ctx, userID, q.From, q.To, q.Descending, q.Limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toDTO(e))
	}

	return dtos, nil
}

// DeleteEntry удаляет запись пользователя
func (s *Service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteWeightEntry(ctx, userID, id); err != nil {
		return ErrEntryNotFound
	}

	return nil
}

// Stats aggregates all entries of the user in chronological order.
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.storage.ListWeightEntries(ctx, userID, nil, nil, false, 0)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	first := entries[0]
	last := entries[len(entries)-1]

	minLB, maxLB, sum := first.WeightLB, first.WeightLB, 0.0
	for _, e := range entries {
		if e.WeightLB < minLB {
			minLB = e.WeightLB
		}
		if e.WeightLB > maxLB {
			maxLB = e.WeightLB
		}
		sum += e.WeightLB
	}

	changeLB := last.WeightLB - first.WeightLB

	return &StatsResponse{
		Count:         len(entries),
		MinLB:         minLB,
		MaxLB:         maxLB,
		MeanLB:        sum / float64(len(entries)),
		FirstDate:     first.Date.Format(dateLayout),
		LastDate:      last.Date.Format(dateLayout),
		FirstLB:       first.WeightLB,
		LastLB:        last.WeightLB,
		TotalChangeLB: changeLB,
		TotalChangeKG: changeLB * engine.LBToKG,
	}, nil
}

func toDTO(e storage.WeightEntry) EntryDTO {
	return EntryDTO{
		ID:        e.ID,
		Date:      e.Date.Format(dateLayout),
		WeightLB:  e.WeightLB,
		WeightKG:  e.WeightLB * engine.LBToKG,
		CreatedAt: e.CreatedAt,
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
