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

type PostService struct {
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
	tx          repository.Transactor
}

func NewPostService(
	postRepo repository.PostRepository,
	profileRepo repository.ProfileRepository,
	tx repository.Transactor,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		tx:          tx,
	}
}

// Create validates and stores a post, bumping the author's postCount in the same transaction.
func (s *PostService) Create(ctx context.Context, userID string, req model.CreatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var post *model.Post
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.profileRepo.Ensure(ctx, tx, userID); err != nil {
			return err
		}

		var err error
		post, err = s.postRepo.Create(ctx, tx, userID, req.Content, req.MediaURLs)
		if err != nil {
			return err
		}

		return s.profileRepo.AdjustCounter(ctx, tx, userID, model.CounterPosts, 1)
	})
	if err != nil {
		return nil, err
	}

	metrics.PostsCreated.Inc()
	logger.For("PostService").WithFields(logrus.Fields{
		"post": post.ID.String(),
		"user": userID,
	}).Info("Post created")

	return post, nil
}

// Delete removes the actor's own post and decrements postCount, floored at zero.
func (s *PostService) Delete(ctx context.Context, actorID string, postID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		ownerID, err := s.postRepo.GetOwnerForUpdate(ctx, tx, postID)
		if err != nil {
			return err
		}
		if ownerID != actorID {
			return model.ErrNotPostOwner
		}

		if err := s.postRepo.Delete(ctx, tx, postID); err != nil {
			return err
		}

		return s.profileRepo.AdjustCounter(ctx, tx, actorID, model.CounterPosts, -1)
	})
	if err != nil {
		return err
	}

	metrics.PostsDeleted.Inc()
	logger.For("PostService").WithFields(logrus.Fields{
		"post": postID.String(),
		"user": actorID,
	}).Info("Post deleted")

	return nil
}
