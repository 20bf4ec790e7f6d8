package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/service"
	"socialhub_backend/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *service.PostService
	likeService *service.LikeService
	feedService *service.FeedService
	log         *logrus.Entry
}

func NewPostHandler(postService *service.PostService, likeService *service.LikeService, feedService *service.FeedService) *PostHandler {
	return &PostHandler{
		postService: postService,
		likeService: likeService,
		feedService: feedService,
		log:         logger.For("PostHandler"),
	}
}

// Create handles POST /posts
// Creates a new post for the authenticated user.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to create post")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// GetByID handles GET /posts/{id}
// Returns a single post with its counts and author.
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, ok := uuidParam(w, r, "id", "Invalid post ID")
	if !ok {
		return
	}

	post, err := h.feedService.GetPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to get post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}
// Only the owner can delete a post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := uuidParam(w, r, "id", "Invalid post ID")
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), userID, postID); err != nil {
		writeServiceError(w, r, h.log, err, "Failed to delete post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// List handles GET /posts
// Returns the global feed, newest first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	posts, err := h.feedService.ListPosts(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to get posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// ListUserPosts handles GET /users/{id}/posts
func (h *PostHandler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	posts, err := h.feedService.ListUserPosts(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to get user posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// ToggleLike handles POST /posts/{id}/like
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := uuidParam(w, r, "id", "Invalid post ID")
	if !ok {
		return
	}

	liked, err := h.likeService.TogglePost(r.Context(), userID, postID)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to toggle like")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.LikeToggleResponse{Liked: liked})
}
