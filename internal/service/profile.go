package service

import (
	"context"

	"socialhub_backend/internal/model"
	"socialhub_backend/internal/repository"
)

// ProfileService handles the per-user profile record.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	followRepo  repository.FollowRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, followRepo repository.FollowRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		followRepo:  followRepo,
	}
}

// GetMe returns the session user with their profile, creating the profile on first fetch.
func (s *ProfileService) GetMe(ctx context.Context, session *model.Session) (*model.MeResponse, error) {
	profile, err := s.profileRepo.GetOrCreate(ctx, session.User.ID)
	if err != nil {
		return nil, err
	}
	return &model.MeResponse{SessionUser: session.User, Profile: profile}, nil
}

// UpdateMe applies the provided fields to the caller's profile.
func (s *ProfileService) UpdateMe(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.profileRepo.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	return s.profileRepo.Update(ctx, userID, req)
}

// SetAvatar points the caller's avatarUrl at an uploaded image.
func (s *ProfileService) SetAvatar(ctx context.Context, userID, avatarURL string) (*model.Profile, error) {
	return s.UpdateMe(ctx, userID, model.UpdateProfileRequest{AvatarURL: &avatarURL})
}

// GetProfile returns userID's profile as seen by viewerID. An empty viewerID is anonymous.
func (s *ProfileService) GetProfile(ctx context.Context, userID, viewerID string) (*model.ProfileView, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &model.ProfileView{Profile: *profile}
	if viewerID != "" && viewerID != userID {
		following, err := s.followRepo.Exists(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
		view.IsFollowing = following
	}
	return view, nil
}
