package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// MemoryStorage is the in-memory implementation of every storage
// interface. Used when no DATABASE_URL is configured and in tests.
type MemoryStorage struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]storage.User
	profiles *profilesMemoryStorage
	weights  *weightsMemoryStorage
	reports  *reportsMemoryStorage
}

// New creates an empty MemoryStorage.
func New() *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[uuid.UUID]storage.User),
		profiles: newProfilesMemoryStorage(),
		weights:  newWeightsMemoryStorage(),
		reports:  newReportsMemoryStorage(),
	}
}

func (m *MemoryStorage) CreateUser(ctx context.Context, user *storage.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range m.users {
		if strings.ToLower(u.Email) == email {
			return ErrDuplicateEmail
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	m.users[user.ID] = *user

	return nil
}

func (m *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*storage.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range m.users {
		if strings.ToLower(u.Email) == email {
			copied := u
			return &copied, nil
		}
	}

	return nil, nil
}

func (m *MemoryStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}

	copied := u
	return &copied, nil
}

func (m *MemoryStorage) Close() error {
	// no-op for memory
	return nil
}

// ProfilesStorage methods - delegate to the embedded profiles storage

func (m *MemoryStorage) GetBodyProfile(ctx context.Context, userID uuid.UUID) (*storage.BodyProfile, error) {
	return m.profiles.GetBodyProfile(ctx, userID)
}

func (m *MemoryStorage) UpsertBodyProfile(ctx context.Context, profile *storage.BodyProfile) (*storage.BodyProfile, error) {
	return m.profiles.UpsertBodyProfile(ctx, profile)
}

// WeightsStorage methods

func (m *MemoryStorage) CreateWeightEntry(ctx context.Context, entry *storage.WeightEntry) error {
	return m.weights.CreateWeightEntry(ctx, entry)
}

func (m *MemoryStorage) ListWeightEntries(ctx context.Context, userID uuid.UUID, from, to *time.Time, descending bool, limit int) ([]storage.WeightEntry, error) {
	return m.weights.ListWeightEntries(ctx, userID, from, to, descending, limit)
}

func (m *MemoryStorage) GetLatestWeightEntry(ctx context.Context, userID uuid.UUID) (*storage.WeightEntry, error) {
	return m.weights.GetLatestWeightEntry(ctx, userID)
}

func (m *MemoryStorage) DeleteWeightEntry(ctx context.Context, userID, id uuid.UUID) error {
	return m.weights.DeleteWeightEntry(ctx, userID, id)
}

// ReportsStorage methods

func (m *MemoryStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	return m.reports.CreateReport(ctx, report)
}

func (m *MemoryStorage) GetReport(ctx context.Context, id uuid.UUID) (*storage.ReportMeta, error) {
	return m.reports.GetReport(ctx, id)
}

func (m *MemoryStorage) ListReports(ctx context.Context, userID uuid.UUID, limit, offset int) ([]storage.ReportMeta, error) {
	return m.reports.ListReports(ctx, userID, limit, offset)
}

func (m *MemoryStorage) DeleteReport(ctx context.Context, id uuid.UUID) error {
	return m.reports.DeleteReport(ctx, id)
}
