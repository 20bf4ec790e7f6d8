package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/metrics"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/repository"
)

type FollowService struct {
	followRepo  repository.FollowRepository
	profileRepo repository.ProfileRepository
	tx          repository.Transactor
}

func NewFollowService(
	followRepo repository.FollowRepository,
	profileRepo repository.ProfileRepository,
	tx repository.Transactor,
) *FollowService {
	return &FollowService{
		followRepo:  followRepo,
		profileRepo: profileRepo,
		tx:          tx,
	}
}

// Toggle flips the follow edge actor -> target and keeps both users' counters
// in step with it. It returns the new state: true when actor now follows target.
//
// The edge change and both counter updates commit together or not at all.
// Removing first and inserting only when nothing was removed means two
// concurrent toggles cannot both insert, and a lost insert race changes no
// counters.
func (s *FollowService) Toggle(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, model.ErrCannotFollowSelf
	}

	var following bool
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.profileRepo.Ensure(ctx, tx, actorID, targetID); err != nil {
			return err
		}

		removed, err := s.followRepo.Delete(ctx, tx, actorID, targetID)
		if err != nil {
			return err
		}
		if removed {
			following = false
			return s.adjustFollowCounters(ctx, tx, actorID, targetID, -1)
		}

		inserted, err := s.followRepo.Create(ctx, tx, actorID, targetID)
		if err != nil {
			return err
		}
		following = true
		if !inserted {
			return nil
		}
		return s.adjustFollowCounters(ctx, tx, actorID, targetID, 1)
	})
	if err != nil {
		return false, err
	}

	metrics.FollowToggles.WithLabelValues(metrics.ToggleResult(following)).Inc()
	logger.For("FollowService").WithFields(logrus.Fields{
		"actor":     actorID,
		"target":    targetID,
		"following": following,
	}).Debug("Follow toggled")

	return following, nil
}

func (s *FollowService) adjustFollowCounters(ctx context.Context, tx *sqlx.Tx, actorID, targetID string, delta int) error {
	if err := s.profileRepo.AdjustCounter(ctx, tx, targetID, model.CounterFollowers, delta); err != nil {
		return err
	}
	return s.profileRepo.AdjustCounter(ctx, tx, actorID, model.CounterFollowing, delta)
}
