package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialhub_backend/internal/model"
)

// =============================================================================
// FAKES AND MOCKS
// =============================================================================
//
// Services depend on repository interfaces, so tests swap in either an
// in-memory fake (when the test cares about state, e.g. counters) or a mock
// with function fields (when the test cares about one call's result).

// fakeTransactor runs fn directly. Fakes below ignore the nil *sqlx.Tx.
type fakeTransactor struct {
	calls     int
	rollbacks int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	f.calls++
	if err := fn(nil); err != nil {
		f.rollbacks++
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------
// Profiles
// -----------------------------------------------------------------------------

type memProfileRepository struct {
	profiles map[string]*model.Profile

	// Optional failure injection
	ensureErr error
	adjustErr error

	ensureCalls       int
	getByUserIDsCalls [][]string
}

func newMemProfileRepository() *memProfileRepository {
	return &memProfileRepository{profiles: make(map[string]*model.Profile)}
}

func (m *memProfileRepository) seed(userID string, posts, followers, following int) {
	m.profiles[userID] = &model.Profile{
		ID:             uuid.NewString(),
		UserID:         userID,
		PostCount:      posts,
		FollowerCount:  followers,
		FollowingCount: following,
	}
}

func (m *memProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfileRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]model.Profile, error) {
	m.getByUserIDsCalls = append(m.getByUserIDsCalls, userIDs)
	var out []model.Profile
	for _, id := range userIDs {
		if p, ok := m.profiles[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProfileRepository) GetOrCreate(ctx context.Context, userID string) (*model.Profile, error) {
	if _, ok := m.profiles[userID]; !ok {
		m.seed(userID, 0, 0, 0)
	}
	return m.GetByUserID(ctx, userID)
}

func (m *memProfileRepository) Update(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.Location != nil {
		p.Location = req.Location
	}
	if req.Website != nil {
		p.Website = req.Website
	}
	if req.AvatarURL != nil {
		p.AvatarURL = req.AvatarURL
	}
	p.UpdatedAt = time.Now()
	return m.GetByUserID(ctx, userID)
}

func (m *memProfileRepository) Ensure(ctx context.Context, tx *sqlx.Tx, userIDs ...string) error {
	m.ensureCalls++
	if m.ensureErr != nil {
		return m.ensureErr
	}
	for _, id := range userIDs {
		if _, ok := m.profiles[id]; !ok {
			m.seed(id, 0, 0, 0)
		}
	}
	return nil
}

func (m *memProfileRepository) AdjustCounter(ctx context.Context, tx *sqlx.Tx, userID string, counter model.Counter, delta int) error {
	if m.adjustErr != nil {
		return m.adjustErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return model.ErrProfileNotFound
	}

	var field *int
	switch counter {
	case model.CounterFollowers:
		field = &p.FollowerCount
	case model.CounterFollowing:
		field = &p.FollowingCount
	case model.CounterPosts:
		field = &p.PostCount
	default:
		return model.ErrUnknownCounter
	}
	*field = max(*field+delta, 0)
	return nil
}

func (m *memProfileRepository) counts(userID string) (posts, followers, following int) {
	p, ok := m.profiles[userID]
	if !ok {
		return 0, 0, 0
	}
	return p.PostCount, p.FollowerCount, p.FollowingCount
}

// -----------------------------------------------------------------------------
// Follows
// -----------------------------------------------------------------------------

type followKey struct{ follower, following string }

type memFollowRepository struct {
	edges map[followKey]time.Time

	// createFn overrides Create, e.g. to simulate losing an insert race.
	createFn func(followerID, followingID string) (bool, error)

	listFollowersFn func(userID string, page model.Page) ([]model.Follower, error)
}

func newMemFollowRepository() *memFollowRepository {
	return &memFollowRepository{edges: make(map[followKey]time.Time)}
}

func (m *memFollowRepository) Create(ctx context.Context, tx *sqlx.Tx, followerID, followingID string) (bool, error) {
	if m.createFn != nil {
		return m.createFn(followerID, followingID)
	}
	k := followKey{followerID, followingID}
	if _, ok := m.edges[k]; ok {
		return false, nil
	}
	m.edges[k] = time.Now()
	return true, nil
}

func (m *memFollowRepository) Delete(ctx context.Context, tx *sqlx.Tx, followerID, followingID string) (bool, error) {
	k := followKey{followerID, followingID}
	if _, ok := m.edges[k]; !ok {
		return false, nil
	}
	delete(m.edges, k)
	return true, nil
}

func (m *memFollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	_, ok := m.edges[followKey{followerID, followingID}]
	return ok, nil
}

func (m *memFollowRepository) ListFollowers(ctx context.Context, userID string, page model.Page) ([]model.Follower, error) {
	if m.listFollowersFn != nil {
		return m.listFollowersFn(userID, page)
	}
	out := []model.Follower{}
	for k, at := range m.edges {
		if k.following == userID {
			out = append(out, model.Follower{FollowerID: k.follower, CreatedAt: at})
		}
	}
	return out, nil
}

func (m *memFollowRepository) ListFollowing(ctx context.Context, userID string, page model.Page) ([]model.Following, error) {
	out := []model.Following{}
	for k, at := range m.edges {
		if k.follower == userID {
			out = append(out, model.Following{FollowingID: k.following, CreatedAt: at})
		}
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Likes
// -----------------------------------------------------------------------------

type likeKey struct {
	target model.LikeTarget
	userID string
}

type memLikeRepository struct {
	likes       map[likeKey]bool
	createCalls int
	deleteCalls int
}

func newMemLikeRepository() *memLikeRepository {
	return &memLikeRepository{likes: make(map[likeKey]bool)}
}

func (m *memLikeRepository) Create(ctx context.Context, tx *sqlx.Tx, target model.LikeTarget, userID string) (bool, error) {
	m.createCalls++
	k := likeKey{target, userID}
	if m.likes[k] {
		return false, nil
	}
	m.likes[k] = true
	return true, nil
}

func (m *memLikeRepository) Delete(ctx context.Context, tx *sqlx.Tx, target model.LikeTarget, userID string) (bool, error) {
	m.deleteCalls++
	k := likeKey{target, userID}
	if !m.likes[k] {
		return false, nil
	}
	delete(m.likes, k)
	return true, nil
}

// -----------------------------------------------------------------------------
// Posts
// -----------------------------------------------------------------------------

type mockPostRepository struct {
	createFn            func(userID, content string, mediaURLs []string) (*model.Post, error)
	getByIDFn           func(postID uuid.UUID) (*model.PostWithStats, error)
	getOwnerForUpdateFn func(postID uuid.UUID) (string, error)
	deleteFn            func(postID uuid.UUID) error
	existsFn            func(postID uuid.UUID) (bool, error)
	listFn              func(page model.Page) ([]model.PostWithStats, error)
	listByUserFn        func(userID string, page model.Page) ([]model.PostWithStats, error)

	// Track calls for assertions
	createCalls int
	deleteCalls []uuid.UUID
}

func (m *mockPostRepository) Create(ctx context.Context, tx *sqlx.Tx, userID, content string, mediaURLs []string) (*model.Post, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(userID, content, mediaURLs)
	}
	now := time.Now()
	return &model.Post{ID: uuid.New(), UserID: userID, Content: content, MediaURLs: mediaURLs, CreatedAt: now, UpdatedAt: now}, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID uuid.UUID) (*model.PostWithStats, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetOwnerForUpdate(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID) (string, error) {
	if m.getOwnerForUpdateFn != nil {
		return m.getOwnerForUpdateFn(postID)
	}
	return "", model.ErrPostNotFound
}

func (m *mockPostRepository) Delete(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID) error {
	m.deleteCalls = append(m.deleteCalls, postID)
	if m.deleteFn != nil {
		return m.deleteFn(postID)
	}
	return nil
}

func (m *mockPostRepository) Exists(ctx context.Context, postID uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(postID)
	}
	return false, nil
}

func (m *mockPostRepository) List(ctx context.Context, page model.Page) ([]model.PostWithStats, error) {
	if m.listFn != nil {
		return m.listFn(page)
	}
	return []model.PostWithStats{}, nil
}

func (m *mockPostRepository) ListByUser(ctx context.Context, userID string, page model.Page) ([]model.PostWithStats, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(userID, page)
	}
	return []model.PostWithStats{}, nil
}

// -----------------------------------------------------------------------------
// Comments
// -----------------------------------------------------------------------------

type mockCommentRepository struct {
	createFn     func(postID uuid.UUID, userID, content string) (*model.Comment, error)
	existsFn     func(commentID uuid.UUID) (bool, error)
	listByPostFn func(postID uuid.UUID, page model.Page) ([]model.Comment, error)

	createCalls int
}

func (m *mockCommentRepository) Create(ctx context.Context, postID uuid.UUID, userID, content string) (*model.Comment, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(postID, userID, content)
	}
	now := time.Now()
	return &model.Comment{ID: uuid.New(), PostID: postID, UserID: userID, Content: content, CreatedAt: now, UpdatedAt: now}, nil
}

func (m *mockCommentRepository) Exists(ctx context.Context, commentID uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(commentID)
	}
	return false, nil
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID, page model.Page) ([]model.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(postID, page)
	}
	return []model.Comment{}, nil
}

// existingPosts returns an existsFn that knows exactly ids.
func existingPosts(ids ...uuid.UUID) func(uuid.UUID) (bool, error) {
	return func(id uuid.UUID) (bool, error) {
		for _, known := range ids {
			if known == id {
				return true, nil
			}
		}
		return false, nil
	}
}
