package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialhub_backend/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create records a like. Uniqueness comes from the partial unique indexes on
// (post_id, user_id) and (comment_id, user_id), so a duplicate is a no-op.
func (r *likeRepository) Create(ctx context.Context, tx *sqlx.Tx, target model.LikeTarget, userID string) (bool, error) {
	column, err := target.Column()
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		INSERT INTO likes (%s, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, column)

	result, err := tx.ExecContext(ctx, query, target.ID, userID)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return false, notFoundFor(target)
		}
		return false, fmt.Errorf("failed to create like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, tx *sqlx.Tx, target model.LikeTarget, userID string) (bool, error) {
	column, err := target.Column()
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`DELETE FROM likes WHERE %s = $1 AND user_id = $2`, column)

	result, err := tx.ExecContext(ctx, query, target.ID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func notFoundFor(target model.LikeTarget) error {
	if target.Kind == model.LikeTargetComment {
		return model.ErrCommentNotFound
	}
	return model.ErrPostNotFound
}
