package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialhub_backend/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, postID uuid.UUID, userID, content string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, user_id, content, created_at, updated_at
	`
	var comment model.Comment
	if err := r.db.GetContext(ctx, &comment, query, postID, userID, content); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			// The post was deleted between the existence check and the insert.
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) Exists(ctx context.Context, commentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, commentID)
	if err != nil {
		return false, fmt.Errorf("check comment exists: %w", err)
	}
	return exists, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID, page model.Page) ([]model.Comment, error) {
	query := `
		SELECT id, post_id, user_id, content, created_at, updated_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	comments := []model.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID, page.Limit, page.Offset()); err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	return comments, nil
}
