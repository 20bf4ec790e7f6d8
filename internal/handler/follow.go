package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/service"
	"socialhub_backend/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
	feedService   *service.FeedService
	log           *logrus.Entry
}

func NewFollowHandler(followService *service.FollowService, feedService *service.FeedService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		feedService:   feedService,
		log:           logger.For("FollowHandler"),
	}
}

// Toggle handles POST /users/{id}/follow
// Follows the target when not yet followed, unfollows otherwise.
func (h *FollowHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	following, err := h.followService.Toggle(r.Context(), actorID, targetID)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to toggle follow")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.FollowToggleResponse{Following: following})
}

// ListFollowers handles GET /users/{id}/followers
func (h *FollowHandler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	result, err := h.feedService.ListFollowers(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to fetch followers")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ListFollowing handles GET /users/{id}/following
func (h *FollowHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	result, err := h.feedService.ListFollowing(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to fetch following")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
