package service

import (
	"context"

	"github.com/google/uuid"

	"socialhub_backend/internal/model"
	"socialhub_backend/internal/repository"
)

// FeedService assembles the paginated read side: listings joined with
// aggregate counts and author profiles.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	profileRepo repository.ProfileRepository
}

func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	profileRepo repository.ProfileRepository,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		profileRepo: profileRepo,
	}
}

// ListPosts returns the global feed, newest first.
func (s *FeedService) ListPosts(ctx context.Context, page model.Page) (*model.PostListResponse, error) {
	posts, err := s.postRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.postList(ctx, posts, page)
}

// ListUserPosts returns one user's posts, newest first.
func (s *FeedService) ListUserPosts(ctx context.Context, userID string, page model.Page) (*model.PostListResponse, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.postList(ctx, posts, page)
}

// GetPost returns a single post with its counts and author.
func (s *FeedService) GetPost(ctx context.Context, postID uuid.UUID) (*model.PostWithStats, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	authors, err := s.authors(ctx, []string{post.UserID})
	if err != nil {
		return nil, err
	}
	post.Author = authorOrStub(authors, post.UserID)

	return post, nil
}

// ListComments returns a post's comments, newest first. An unknown post yields an empty page.
func (s *FeedService) ListComments(ctx context.Context, postID uuid.UUID, page model.Page) (*model.CommentListResponse, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID, page)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(comments))
	for i := range comments {
		ids[i] = comments[i].UserID
	}
	authors, err := s.authors(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].Author = authorOrStub(authors, comments[i].UserID)
	}

	return &model.CommentListResponse{
		Comments:   comments,
		Pagination: page.Meta(len(comments)),
	}, nil
}

// ListFollowers returns who follows userID. Entries without a profile row carry no profile.
func (s *FeedService) ListFollowers(ctx context.Context, userID string, page model.Page) (*model.FollowerListResponse, error) {
	followers, err := s.followRepo.ListFollowers(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(followers))
	for i := range followers {
		ids[i] = followers[i].FollowerID
	}
	profiles, err := s.authors(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range followers {
		followers[i].Profile = profiles[followers[i].FollowerID]
	}

	return &model.FollowerListResponse{
		Followers:  followers,
		Pagination: page.Meta(len(followers)),
	}, nil
}

// ListFollowing returns who userID follows.
func (s *FeedService) ListFollowing(ctx context.Context, userID string, page model.Page) (*model.FollowingListResponse, error) {
	following, err := s.followRepo.ListFollowing(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(following))
	for i := range following {
		ids[i] = following[i].FollowingID
	}
	profiles, err := s.authors(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range following {
		following[i].Profile = profiles[following[i].FollowingID]
	}

	return &model.FollowingListResponse{
		Following:  following,
		Pagination: page.Meta(len(following)),
	}, nil
}

func (s *FeedService) postList(ctx context.Context, posts []model.PostWithStats, page model.Page) (*model.PostListResponse, error) {
	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].UserID
	}
	authors, err := s.authors(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Author = authorOrStub(authors, posts[i].UserID)
	}

	return &model.PostListResponse{
		Posts:      posts,
		Pagination: page.Meta(len(posts)),
	}, nil
}

// authors loads the profiles of the distinct userIDs with one batched query.
func (s *FeedService) authors(ctx context.Context, userIDs []string) (map[string]*model.Profile, error) {
	seen := make(map[string]struct{}, len(userIDs))
	distinct := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	result := make(map[string]*model.Profile, len(distinct))
	if len(distinct) == 0 {
		return result, nil
	}

	profiles, err := s.profileRepo.GetByUserIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		result[profiles[i].UserID] = &profiles[i]
	}
	return result, nil
}

func authorOrStub(profiles map[string]*model.Profile, userID string) any {
	if p, ok := profiles[userID]; ok {
		return p
	}
	return model.ProfileStub{UserID: userID}
}
