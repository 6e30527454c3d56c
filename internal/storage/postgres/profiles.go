package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *PostgresStorage) GetBodyProfile(ctx context.Context, userID uuid.UUID) (*storage.BodyProfile, error) {
	query := `
		SELECT user_id, weight_lb, height_in, age, sex, activity_level, goal, intensity, preferred_unit, created_at, updated_at
		FROM body_profiles
		WHERE user_id = $1
	`
	var p storage.BodyProfile
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.WeightLB, &p.HeightIn, &p.Age, &p.Sex,
		&p.ActivityLevel, &p.Goal, &p.Intensity, &p.PreferredUnit,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get body profile: %w", err)
	}

	return &p, nil
}

func (s *PostgresStorage) UpsertBodyProfile(ctx context.Context, profile *storage.BodyProfile) (*storage.BodyProfile, error) {
	query := `
		INSERT INTO body_profiles (user_id, weight_lb, height_in, age, sex, activity_level, goal, intensity, preferred_unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			weight_lb = EXCLUDED.weight_lb,
			height_in = EXCLUDED.height_in,
			age = EXCLUDED.age,
			sex = EXCLUDED.sex,
			activity_level = EXCLUDED.activity_level,
			goal = EXCLUDED.goal,
			intensity = EXCLUDED.intensity,
			preferred_unit = EXCLUDED.preferred_unit,
			updated_at = now()
		RETURNING user_id, weight_lb, height_in, age, sex, activity_level, goal, intensity, preferred_unit, created_at, updated_at
	`
	var p storage.BodyProfile
	err := s.pool.QueryRow(ctx, query,
		profile.UserID, profile.WeightLB, profile.HeightIn, profile.Age, profile.Sex,
		profile.ActivityLevel, profile.Goal, profile.Intensity, profile.PreferredUnit,
	).Scan(
		&p.UserID, &p.WeightLB, &p.HeightIn, &p.Age, &p.Sex,
		&p.ActivityLevel, &p.Goal, &p.Intensity, &p.PreferredUnit,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert body profile: %w", err)
	}

	return &p, nil
}
