package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a post.
type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PostID    uuid.UUID `db:"post_id" json:"postId"`
	UserID    string    `db:"user_id" json:"userId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	Author    any       `db:"-" json:"author,omitempty"` // *Profile or ProfileStub on listings
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentListResponse is the paginated comment list response.
type CommentListResponse struct {
	Comments   []Comment      `json:"comments"`
	Pagination PaginationMeta `json:"pagination"`
}

// Comment constraints
const (
	MinCommentLength = 1
	MaxCommentLength = 1000
)

// Comment errors
var (
	ErrCommentNotFound = fmt.Errorf("%w: comment not found", ErrNotFound)
)

// Validate enforces the comment length bounds.
func (r CreateCommentRequest) Validate() error {
	n := CharCount(r.Content)
	if n < MinCommentLength || n > MaxCommentLength {
		return fmt.Errorf("%w: comment content must be between %d and %d characters", ErrInvalidContent, MinCommentLength, MaxCommentLength)
	}
	return nil
}
