package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialhub_backend/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge and reports whether a row was written. A concurrent
// insert of the same edge makes this a no-op instead of an error.
func (r *followRepository) Create(ctx context.Context, tx *sqlx.Tx, followerID, followingID string) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`
	result, err := tx.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return false, model.ErrUserNotFound
		}
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete removes the edge and reports whether it existed.
func (r *followRepository) Delete(ctx context.Context, tx *sqlx.Tx, followerID, followingID string) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	result, err := tx.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

// ListFollowers returns who follows userID, newest first.
func (r *followRepository) ListFollowers(ctx context.Context, userID string, page model.Page) ([]model.Follower, error) {
	query := `
		SELECT follower_id, created_at
		FROM follows
		WHERE following_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	followers := []model.Follower{}
	if err := r.db.SelectContext(ctx, &followers, query, userID, page.Limit, page.Offset()); err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	return followers, nil
}

// ListFollowing returns who userID follows, newest first.
func (r *followRepository) ListFollowing(ctx context.Context, userID string, page model.Page) ([]model.Following, error) {
	query := `
		SELECT following_id, created_at
		FROM follows
		WHERE follower_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	following := []model.Following{}
	if err := r.db.SelectContext(ctx, &following, query, userID, page.Limit, page.Offset()); err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	return following, nil
}
