package model

import (
	"fmt"

	"github.com/google/uuid"
)

// LikeTargetKind distinguishes post likes from comment likes.
type LikeTargetKind string

const (
	LikeTargetPost    LikeTargetKind = "post"
	LikeTargetComment LikeTargetKind = "comment"
)

// LikeTarget identifies exactly one likeable entity.
type LikeTarget struct {
	Kind LikeTargetKind
	ID   uuid.UUID
}

func PostTarget(id uuid.UUID) LikeTarget    { return LikeTarget{Kind: LikeTargetPost, ID: id} }
func CommentTarget(id uuid.UUID) LikeTarget { return LikeTarget{Kind: LikeTargetComment, ID: id} }

// Column returns the likes column that references the target.
func (t LikeTarget) Column() (string, error) {
	switch t.Kind {
	case LikeTargetPost:
		return "post_id", nil
	case LikeTargetComment:
		return "comment_id", nil
	}
	return "", fmt.Errorf("unknown like target %q", t.Kind)
}

type LikeToggleResponse struct {
	Liked bool `json:"liked"`
}
