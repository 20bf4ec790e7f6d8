package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Post is a row of the posts table.
type Post struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"userId"`
	Content   string         `db:"content" json:"content"`
	MediaURLs pq.StringArray `db:"media_urls" json:"mediaUrls"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

// PostWithStats is a post with engagement aggregated at read time.
// Author is either a *Profile or a ProfileStub.
type PostWithStats struct {
	Post
	LikeCount    int `db:"like_count" json:"likeCount"`
	CommentCount int `db:"comment_count" json:"commentCount"`
	Author       any `db:"-" json:"author"`
}

// CreatePostRequest is the POST /posts body.
type CreatePostRequest struct {
	Content   string   `json:"content"`
	MediaURLs []string `json:"mediaUrls,omitempty"`
}

type PostListResponse struct {
	Posts      []PostWithStats `json:"posts"`
	Pagination PaginationMeta  `json:"pagination"`
}

// Post constraints
const (
	MinPostLength = 1
	MaxPostLength = 280
)

var (
	ErrPostNotFound    = fmt.Errorf("%w: post not found", ErrNotFound)
	ErrNotPostOwner    = fmt.Errorf("%w: you can only delete your own posts", ErrForbidden)
	ErrInvalidContent  = fmt.Errorf("%w: invalid content length", ErrInvalidOperation)
	ErrInvalidMediaURL = fmt.Errorf("%w: media URLs must be valid URLs", ErrInvalidOperation)
)

// Validate enforces the content length and media URL rules.
func (r CreatePostRequest) Validate() error {
	n := CharCount(r.Content)
	if n < MinPostLength || n > MaxPostLength {
		return fmt.Errorf("%w: post content must be between %d and %d characters", ErrInvalidContent, MinPostLength, MaxPostLength)
	}
	for _, u := range r.MediaURLs {
		if !IsValidURL(u) {
			return ErrInvalidMediaURL
		}
	}
	return nil
}
