package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/service"
	"socialhub_backend/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
	likeService    *service.LikeService
	feedService    *service.FeedService
	log            *logrus.Entry
}

func NewCommentHandler(commentService *service.CommentService, likeService *service.LikeService, feedService *service.FeedService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		likeService:    likeService,
		feedService:    feedService,
		log:            logger.For("CommentHandler"),
	}
}

// Create handles POST /posts/{id}/comments
// Creates a comment on a post for the authenticated user.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := uuidParam(w, r, "id", "Invalid post ID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), userID, postID, req)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to create comment")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// List handles GET /posts/{id}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, ok := uuidParam(w, r, "id", "Invalid post ID")
	if !ok {
		return
	}
	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	comments, err := h.feedService.ListComments(r.Context(), postID, page)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to get comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// ToggleLike handles POST /comments/{id}/like
func (h *CommentHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, ok := uuidParam(w, r, "id", "Invalid comment ID")
	if !ok {
		return
	}

	liked, err := h.likeService.ToggleComment(r.Context(), userID, commentID)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to toggle like")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.LikeToggleResponse{Liked: liked})
}
