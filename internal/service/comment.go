package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/metrics"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/repository"
)

// CommentService creates comments. No counter is kept for comments; the
// listing queries count them on read.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) Create(ctx context.Context, userID string, postID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	comment, err := s.commentRepo.Create(ctx, postID, userID, req.Content)
	if err != nil {
		return nil, err
	}

	metrics.CommentsCreated.Inc()
	logger.For("CommentService").WithFields(logrus.Fields{
		"comment": comment.ID.String(),
		"post":    postID.String(),
		"user":    userID,
	}).Info("Comment created")

	return comment, nil
}
