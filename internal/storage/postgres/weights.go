package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrEntryNotFound = errors.New("weight entry not found")

func (s *PostgresStorage) CreateWeightEntry(ctx context.Context, entry *storage.WeightEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	query := `
		INSERT INTO weight_entries (id, user_id, entry_date, weight_lb)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := s.pool.QueryRow(ctx, query, entry.ID, entry.UserID, entry.Date, entry.WeightLB).
		Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create weight entry: %w", err)
	}

	return nil
}

func (s *PostgresStorage) ListWeightEntries(ctx context.Context, userID uuid.UUID, from, to *time.Time, descending bool, limit int) ([]storage.WeightEntry, error) {
	query := `
		SELECT id, user_id, entry_date, weight_lb, created_at
		FROM weight_entries
		WHERE user_id = $1
		  AND ($2::date IS NULL OR entry_date >= $2)
		  AND ($3::date IS NULL OR entry_date <= $3)
	`
	if descending {
		query += " ORDER BY entry_date DESC, created_at DESC"
	} else {
		query += " ORDER BY entry_date ASC, created_at ASC"
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight entries: %w", err)
	}
	defer rows.Close()

	var entries []storage.WeightEntry
	for rows.Next() {
		var e storage.WeightEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.WeightLB, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *PostgresStorage) GetLatestWeightEntry(ctx context.Context, userID uuid.UUID) (*storage.WeightEntry, error) {
	query := `
		SELECT id, user_id, entry_date, weight_lb, created_at
		FROM weight_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC
		LIMIT 1
	`
	var e storage.WeightEntry
	err := s.pool.QueryRow(ctx, query, userID).
		Scan(&e.ID, &e.UserID, &e.Date, &e.WeightLB, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest weight entry: %w", err)
	}

	return &e, nil
}

func (s *PostgresStorage) DeleteWeightEntry(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM weight_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete weight entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}
