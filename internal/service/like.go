package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/metrics"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/repository"
)

// LikeService toggles likes. Like counts are never stored; listings aggregate
// them when reading, so a toggle only touches the likes ledger.
type LikeService struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	tx          repository.Transactor
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	tx repository.Transactor,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		tx:          tx,
	}
}

// TogglePost flips the actor's like on a post and returns the new state.
func (s *LikeService) TogglePost(ctx context.Context, actorID string, postID uuid.UUID) (bool, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, model.ErrPostNotFound
	}
	return s.toggle(ctx, actorID, model.PostTarget(postID))
}

// ToggleComment flips the actor's like on a comment and returns the new state.
func (s *LikeService) ToggleComment(ctx context.Context, actorID string, commentID uuid.UUID) (bool, error) {
	exists, err := s.commentRepo.Exists(ctx, commentID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, model.ErrCommentNotFound
	}
	return s.toggle(ctx, actorID, model.CommentTarget(commentID))
}

func (s *LikeService) toggle(ctx context.Context, actorID string, target model.LikeTarget) (bool, error) {
	var liked bool
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		removed, err := s.likeRepo.Delete(ctx, tx, target, actorID)
		if err != nil {
			return err
		}
		if removed {
			liked = false
			return nil
		}

		// A concurrent like of the same target leaves inserted=false; the
		// edge exists either way.
		if _, err := s.likeRepo.Create(ctx, tx, target, actorID); err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}

	metrics.LikeToggles.WithLabelValues(string(target.Kind), metrics.ToggleResult(liked)).Inc()
	logger.For("LikeService").WithFields(logrus.Fields{
		"actor":  actorID,
		"target": target.ID.String(),
		"kind":   target.Kind,
		"liked":  liked,
	}).Debug("Like toggled")

	return liked, nil
}
