package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialhub_backend/internal/model"
)

const profileColumns = `id, user_id, bio, avatar_url, location, website,
	follower_count, following_count, post_count, created_at, updated_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`

	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]model.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = ANY($1)`

	var profiles []model.Profile
	if err := r.db.SelectContext(ctx, &profiles, query, pq.Array(userIDs)); err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) GetOrCreate(ctx context.Context, userID string) (*model.Profile, error) {
	query := `
		INSERT INTO user_profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) Update(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.Profile, error) {
	query := `
		UPDATE user_profiles SET
			bio = COALESCE($2, bio),
			location = COALESCE($3, location),
			website = COALESCE($4, website),
			avatar_url = COALESCE($5, avatar_url),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, userID, req.Bio, req.Location, req.Website, req.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Ensure(ctx context.Context, tx *sqlx.Tx, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_profiles (user_id)
		SELECT unnest($1::text[])
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, query, pq.Array(userIDs)); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return model.ErrUserNotFound
		}
		return fmt.Errorf("failed to ensure profiles: %w", err)
	}
	return nil
}

func (r *profileRepository) AdjustCounter(ctx context.Context, tx *sqlx.Tx, userID string, counter model.Counter, delta int) error {
	if !counter.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCounter, counter)
	}

	// counter is one of a closed set of column names, never user input.
	query := fmt.Sprintf(`
		UPDATE user_profiles
		SET %[1]s = GREATEST(%[1]s + $1, 0), updated_at = NOW()
		WHERE user_id = $2
	`, counter)

	result, err := tx.ExecContext(ctx, query, delta, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust %s: %w", counter, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}
