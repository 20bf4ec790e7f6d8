package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialhub_backend/internal/auth"
	"socialhub_backend/internal/handler"
	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/service"
)

// =============================================================================
// STUB STORE
// =============================================================================
//
// Just enough repository behaviour to drive requests through the full router.

type stubTx struct{}

func (stubTx) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error { return fn(nil) }

type stubProfiles struct{}

func (stubProfiles) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	return nil, model.ErrProfileNotFound
}
func (stubProfiles) GetByUserIDs(ctx context.Context, userIDs []string) ([]model.Profile, error) {
	return nil, nil
}
func (stubProfiles) GetOrCreate(ctx context.Context, userID string) (*model.Profile, error) {
	return &model.Profile{UserID: userID}, nil
}
func (stubProfiles) Update(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.Profile, error) {
	return &model.Profile{UserID: userID}, nil
}
func (stubProfiles) Ensure(ctx context.Context, tx *sqlx.Tx, userIDs ...string) error { return nil }
func (stubProfiles) AdjustCounter(ctx context.Context, tx *sqlx.Tx, userID string, counter model.Counter, delta int) error {
	return nil
}

type stubFollows struct{ edges map[string]bool }

func (s *stubFollows) Create(ctx context.Context, tx *sqlx.Tx, followerID, followingID string) (bool, error) {
	s.edges[followerID+">"+followingID] = true
	return true, nil
}
func (s *stubFollows) Delete(ctx context.Context, tx *sqlx.Tx, followerID, followingID string) (bool, error) {
	k := followerID + ">" + followingID
	existed := s.edges[k]
	delete(s.edges, k)
	return existed, nil
}
func (s *stubFollows) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.edges[followerID+">"+followingID], nil
}
func (s *stubFollows) ListFollowers(ctx context.Context, userID string, page model.Page) ([]model.Follower, error) {
	return []model.Follower{}, nil
}
func (s *stubFollows) ListFollowing(ctx context.Context, userID string, page model.Page) ([]model.Following, error) {
	return []model.Following{}, nil
}

type stubLikes struct{}

func (stubLikes) Create(ctx context.Context, tx *sqlx.Tx, target model.LikeTarget, userID string) (bool, error) {
	return true, nil
}
func (stubLikes) Delete(ctx context.Context, tx *sqlx.Tx, target model.LikeTarget, userID string) (bool, error) {
	return false, nil
}

type stubPosts struct {
	createCalls int
	rows        int
}

func (s *stubPosts) Create(ctx context.Context, tx *sqlx.Tx, userID, content string, mediaURLs []string) (*model.Post, error) {
	s.createCalls++
	return &model.Post{ID: uuid.New(), UserID: userID, Content: content, CreatedAt: time.Now()}, nil
}
func (s *stubPosts) GetByID(ctx context.Context, postID uuid.UUID) (*model.PostWithStats, error) {
	return nil, model.ErrPostNotFound
}
func (s *stubPosts) GetOwnerForUpdate(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID) (string, error) {
	return "", model.ErrPostNotFound
}
func (s *stubPosts) Delete(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID) error { return nil }
func (s *stubPosts) Exists(ctx context.Context, postID uuid.UUID) (bool, error) {
	return false, nil
}
func (s *stubPosts) List(ctx context.Context, page model.Page) ([]model.PostWithStats, error) {
	posts := make([]model.PostWithStats, min(s.rows, page.Limit))
	for i := range posts {
		posts[i].ID = uuid.New()
		posts[i].UserID = "alice"
	}
	return posts, nil
}
func (s *stubPosts) ListByUser(ctx context.Context, userID string, page model.Page) ([]model.PostWithStats, error) {
	return s.List(ctx, page)
}

type stubComments struct{}

func (stubComments) Create(ctx context.Context, postID uuid.UUID, userID, content string) (*model.Comment, error) {
	return &model.Comment{ID: uuid.New(), PostID: postID, UserID: userID, Content: content}, nil
}
func (stubComments) Exists(ctx context.Context, commentID uuid.UUID) (bool, error) {
	return false, nil
}
func (stubComments) ListByPost(ctx context.Context, postID uuid.UUID, page model.Page) ([]model.Comment, error) {
	return []model.Comment{}, nil
}

// =============================================================================
// SETUP
// =============================================================================

const bearerAlice = "Bearer alice"

// testProvider treats "Bearer <id>" as a session for <id>.
var testProvider = auth.ProviderFunc(func(ctx context.Context, headers stdhttp.Header) (*model.Session, error) {
	h := headers.Get("Authorization")
	if h == "Bearer broken" {
		return nil, errors.New("auth service unavailable")
	}
	id, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || id == "" {
		return nil, nil
	}
	return &model.Session{User: model.SessionUser{ID: id}}, nil
})

func newTestRouter(posts *stubPosts, ready handler.ReadinessCheck) stdhttp.Handler {
	var tx stubTx
	profiles := stubProfiles{}
	follows := &stubFollows{edges: map[string]bool{}}
	likes := stubLikes{}
	comments := stubComments{}

	feed := service.NewFeedService(posts, comments, follows, profiles)
	likeService := service.NewLikeService(likes, posts, comments, tx)

	return NewRouter(RouterConfig{
		ProfileHandler:     handler.NewProfileHandler(service.NewProfileService(profiles, follows), nil),
		FollowHandler:      handler.NewFollowHandler(service.NewFollowService(follows, profiles, tx), feed),
		PostHandler:        handler.NewPostHandler(service.NewPostService(posts, profiles, tx), likeService, feed),
		CommentHandler:     handler.NewCommentHandler(service.NewCommentService(comments, posts), likeService, feed),
		MediaHandler:       handler.NewMediaHandler(nil),
		HealthHandler:      handler.NewHealthHandler("test", "test", ready),
		SessionProvider:    testProvider,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	})
}

func do(t *testing.T, h stdhttp.Handler, method, path, authz, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func okReady(ctx context.Context) error { return nil }

// =============================================================================
// ROUTE TESTS
// =============================================================================

func TestRouter_CreatePost_Unauthenticated(t *testing.T) {
	tests := []struct {
		name  string
		authz string
	}{
		{"no credentials", ""},
		{"session lookup fails", "Bearer broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &stubPosts{}
			router := newTestRouter(posts, okReady)

			rec := do(t, router, stdhttp.MethodPost, "/api/v1/posts", tt.authz, `{"content":"hello"}`)

			if rec.Code != stdhttp.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, stdhttp.StatusUnauthorized)
			}
			if code := errorCode(t, rec); code != httputil.ErrCodeUnauthorized {
				t.Errorf("code = %q, want %q", code, httputil.ErrCodeUnauthorized)
			}
			if posts.createCalls != 0 {
				t.Errorf("Create called %d times, want 0", posts.createCalls)
			}
		})
	}
}

func TestRouter_CreatePost_Authenticated(t *testing.T) {
	posts := &stubPosts{}
	router := newTestRouter(posts, okReady)

	rec := do(t, router, stdhttp.MethodPost, "/api/v1/posts", bearerAlice, `{"content":"hello"}`)

	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, stdhttp.StatusCreated, rec.Body.String())
	}
	var post model.Post
	if err := json.NewDecoder(rec.Body).Decode(&post); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if post.UserID != "alice" {
		t.Errorf("userId = %q, want %q", post.UserID, "alice")
	}
	if posts.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", posts.createCalls)
	}
}

func TestRouter_FollowToggle(t *testing.T) {
	router := newTestRouter(&stubPosts{}, okReady)

	// Self-follow is rejected
	rec := do(t, router, stdhttp.MethodPost, "/api/v1/users/alice/follow", bearerAlice, "")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Errorf("self-follow status = %d, want %d", rec.Code, stdhttp.StatusBadRequest)
	}

	// Follow, then unfollow
	for _, want := range []bool{true, false} {
		rec := do(t, router, stdhttp.MethodPost, "/api/v1/users/bob/follow", bearerAlice, "")
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, stdhttp.StatusOK)
		}
		var body model.FollowToggleResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Following != want {
			t.Errorf("following = %v, want %v", body.Following, want)
		}
	}
}

func TestRouter_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		authz      string
		body       string
		wantStatus int
	}{
		{"like missing post", stdhttp.MethodPost, "/api/v1/posts/" + uuid.NewString() + "/like", bearerAlice, "", stdhttp.StatusNotFound},
		{"like bad post id", stdhttp.MethodPost, "/api/v1/posts/not-a-uuid/like", bearerAlice, "", stdhttp.StatusBadRequest},
		{"like comment anonymously", stdhttp.MethodPost, "/api/v1/comments/" + uuid.NewString() + "/like", "", "", stdhttp.StatusUnauthorized},
		{"delete missing post", stdhttp.MethodDelete, "/api/v1/posts/" + uuid.NewString(), bearerAlice, "", stdhttp.StatusNotFound},
		{"comment on missing post", stdhttp.MethodPost, "/api/v1/posts/" + uuid.NewString() + "/comments", bearerAlice, `{"content":"hi"}`, stdhttp.StatusNotFound},
		{"empty post", stdhttp.MethodPost, "/api/v1/posts", bearerAlice, `{"content":""}`, stdhttp.StatusBadRequest},
		{"malformed body", stdhttp.MethodPost, "/api/v1/posts", bearerAlice, `{`, stdhttp.StatusBadRequest},
		{"limit over max", stdhttp.MethodGet, "/api/v1/posts?limit=51", "", "", stdhttp.StatusBadRequest},
		{"page zero", stdhttp.MethodGet, "/api/v1/users/bob/followers?page=0", "", "", stdhttp.StatusBadRequest},
		{"non-numeric limit", stdhttp.MethodGet, "/api/v1/posts/" + uuid.NewString() + "/comments?limit=ten", "", "", stdhttp.StatusBadRequest},
		{"missing profile", stdhttp.MethodGet, "/api/v1/users/ghost", "", "", stdhttp.StatusNotFound},
		{"me anonymously", stdhttp.MethodGet, "/api/v1/users/me", "", "", stdhttp.StatusUnauthorized},
		{"me", stdhttp.MethodGet, "/api/v1/users/me", bearerAlice, "", stdhttp.StatusOK},
		{"presign without storage", stdhttp.MethodPost, "/api/v1/media/presign", bearerAlice, `{"contentType":"image/png"}`, stdhttp.StatusServiceUnavailable},
		{"unknown route", stdhttp.MethodGet, "/api/v1/nope", "", "", stdhttp.StatusNotFound},
		{"health", stdhttp.MethodGet, "/api/v1/health", "", "", stdhttp.StatusOK},
		{"openapi", stdhttp.MethodGet, "/api/v1/openapi.json", "", "", stdhttp.StatusOK},
		{"metrics", stdhttp.MethodGet, "/metrics", "", "", stdhttp.StatusOK},
	}

	router := newTestRouter(&stubPosts{}, okReady)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.authz, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d: %s", tt.method, tt.path, rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRouter_ListPosts_HasMore(t *testing.T) {
	tests := []struct {
		rows int
		want bool
	}{
		{20, true},
		{5, false},
	}

	for _, tt := range tests {
		router := newTestRouter(&stubPosts{rows: tt.rows}, okReady)

		rec := do(t, router, stdhttp.MethodGet, "/api/v1/posts?limit=20", "", "")
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, stdhttp.StatusOK)
		}

		var body model.PostListResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Pagination.HasMore != tt.want {
			t.Errorf("rows=%d hasMore = %v, want %v", tt.rows, body.Pagination.HasMore, tt.want)
		}
		if len(body.Posts) != tt.rows {
			t.Errorf("rows=%d got %d posts", tt.rows, len(body.Posts))
		}
	}
}

func TestRouter_Readiness(t *testing.T) {
	down := func(ctx context.Context) error { return errors.New("connection refused") }
	router := newTestRouter(&stubPosts{}, down)

	rec := do(t, router, stdhttp.MethodGet, "/api/v1/health/ready", "", "")

	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, stdhttp.StatusServiceUnavailable)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ready"] != false {
		t.Errorf("ready = %v, want false", body["ready"])
	}
}
