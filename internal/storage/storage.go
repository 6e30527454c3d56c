package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an account that owns a body profile and a weight history.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Storage is the primary interface: user accounts plus connection
// lifecycle. Lookups return (nil, nil) when the user does not exist.
type Storage interface {
	// CreateUser inserts a new user. Email must be unique.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByEmail returns a user by email, nil if absent.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID returns a user by id, nil if absent.
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Close releases the underlying connection pool (no-op for memory).
	Close() error
}

// BodyProfile holds the measurements and preferences the planning engine
// consumes. One row per user.
type BodyProfile struct {
	UserID        uuid.UUID
	WeightLB      float64
	HeightIn      float64
	Age           int
	Sex           string
	ActivityLevel string
	Goal          string
	Intensity     string
	PreferredUnit string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfilesStorage manages body profiles.
type ProfilesStorage interface {
	// GetBodyProfile returns the profile for a user, nil if absent.
	GetBodyProfile(ctx context.Context, userID uuid.UUID) (*BodyProfile, error)

	// UpsertBodyProfile creates or replaces the user's profile.
	UpsertBodyProfile(ctx context.Context, profile *BodyProfile) (*BodyProfile, error)
}

// WeightEntry is one dated weight measurement, stored in pounds.
// Entries are immutable once created except for deletion.
type WeightEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Date      time.Time // day granularity
	WeightLB  float64
	CreatedAt time.Time
}

// WeightsStorage manages weight-entry history.
type WeightsStorage interface {
	// CreateWeightEntry appends an entry to the user's history.
	CreateWeightEntry(ctx context.Context, entry *WeightEntry) error

	// ListWeightEntries returns entries in [from, to] (either bound may be
	// nil), ascending by date unless descending is set. limit <= 0 means
	// no limit.
	ListWeightEntries(ctx context.Context, userID uuid.UUID, from, to *time.Time, descending bool, limit int) ([]WeightEntry, error)

	// GetLatestWeightEntry returns the most recent entry, nil if none.
	GetLatestWeightEntry(ctx context.Context, userID uuid.UUID) (*WeightEntry, error)

	// DeleteWeightEntry removes an entry owned by the user.
	DeleteWeightEntry(ctx context.Context, userID, id uuid.UUID) error
}

// ReportMeta is the metadata of a generated weight-progress report.
type ReportMeta struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Format    string  // "pdf" or "csv"
	FromDate  string  // YYYY-MM-DD
	ToDate    string  // YYYY-MM-DD
	ObjectKey *string // S3 object key (NULL for memory mode)
	SizeBytes int64
	Status    string // "ready" or "failed"
	Error     *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Data      []byte // only used in memory mode (not stored in DB)
}

// ReportsStorage manages report metadata (and bytes, in memory mode).
type ReportsStorage interface {
	// CreateReport persists a new report.
	CreateReport(ctx context.Context, report *ReportMeta) error

	// GetReport returns a report by id, nil if absent.
	GetReport(ctx context.Context, id uuid.UUID) (*ReportMeta, error)

	// ListReports returns a user's reports, newest first, with pagination.
	ListReports(ctx context.Context, userID uuid.UUID, limit, offset int) ([]ReportMeta, error)

	// DeleteReport removes a report and its stored bytes.
	DeleteReport(ctx context.Context, id uuid.UUID) error
}
