package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialhub_backend/internal/model"
)

// Like and comment counts are aggregated here on every read; neither is stored on posts.
const postWithStatsSelect = `
	SELECT p.id, p.user_id, p.content, p.media_urls, p.created_at, p.updated_at,
		(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
	FROM posts p
`

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, tx *sqlx.Tx, userID, content string, mediaURLs []string) (*model.Post, error) {
	query := `
		INSERT INTO posts (user_id, content, media_urls)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, content, media_urls, created_at, updated_at
	`

	var urls pq.StringArray
	if len(mediaURLs) > 0 {
		urls = pq.StringArray(mediaURLs)
	}

	var post model.Post
	if err := tx.GetContext(ctx, &post, query, userID, content, urls); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, postID uuid.UUID) (*model.PostWithStats, error) {
	query := postWithStatsSelect + `WHERE p.id = $1`

	var post model.PostWithStats
	err := r.db.GetContext(ctx, &post, query, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) GetOwnerForUpdate(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID) (string, error) {
	var ownerID string
	err := tx.GetContext(ctx, &ownerID, `SELECT user_id FROM posts WHERE id = $1 FOR UPDATE`, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.ErrPostNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get post owner: %w", err)
	}
	return ownerID, nil
}

// Delete removes the post; comments and likes go with it through ON DELETE CASCADE.
func (r *postRepository) Delete(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Exists(ctx context.Context, postID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

func (r *postRepository) List(ctx context.Context, page model.Page) ([]model.PostWithStats, error) {
	query := postWithStatsSelect + `
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`
	posts := []model.PostWithStats{}
	if err := r.db.SelectContext(ctx, &posts, query, page.Limit, page.Offset()); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID string, page model.Page) ([]model.PostWithStats, error) {
	query := postWithStatsSelect + `
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`
	posts := []model.PostWithStats{}
	if err := r.db.SelectContext(ctx, &posts, query, userID, page.Limit, page.Offset()); err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	return posts, nil
}
