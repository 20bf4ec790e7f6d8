package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialhub_backend/internal/model"
)

// Transactor runs fn inside a database transaction. fn's error rolls the
// transaction back; a nil return commits it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]model.Profile, error)
	// GetOrCreate returns the user's profile, inserting an empty one first if absent.
	GetOrCreate(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.Profile, error)
	// Ensure inserts missing profile rows so counter updates never miss.
	Ensure(ctx context.Context, tx *sqlx.Tx, userIDs ...string) error
	// AdjustCounter adds delta to a counter, never going below zero.
	AdjustCounter(ctx context.Context, tx *sqlx.Tx, userID string, counter model.Counter, delta int) error
}

type FollowRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, followerID, followingID string) (bool, error)
	Delete(ctx context.Context, tx *sqlx.Tx, followerID, followingID string) (bool, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowers(ctx context.Context, userID string, page model.Page) ([]model.Follower, error)
	ListFollowing(ctx context.Context, userID string, page model.Page) ([]model.Following, error)
}

type LikeRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, target model.LikeTarget, userID string) (bool, error)
	Delete(ctx context.Context, tx *sqlx.Tx, target model.LikeTarget, userID string) (bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, userID, content string, mediaURLs []string) (*model.Post, error)
	GetByID(ctx context.Context, postID uuid.UUID) (*model.PostWithStats, error)
	// GetOwnerForUpdate locks the post row and returns its author.
	GetOwnerForUpdate(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID) (string, error)
	Delete(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID) error
	Exists(ctx context.Context, postID uuid.UUID) (bool, error)
	List(ctx context.Context, page model.Page) ([]model.PostWithStats, error)
	ListByUser(ctx context.Context, userID string, page model.Page) ([]model.PostWithStats, error)
}

type CommentRepository interface {
	Create(ctx context.Context, postID uuid.UUID, userID, content string) (*model.Comment, error)
	Exists(ctx context.Context, commentID uuid.UUID) (bool, error)
	ListByPost(ctx context.Context, postID uuid.UUID, page model.Page) ([]model.Comment, error)
}
