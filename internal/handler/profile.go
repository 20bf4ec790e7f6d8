package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/service"
	"socialhub_backend/internal/transport/http/middleware"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	mediaService   *service.MediaService
	log            *logrus.Entry
}

func NewProfileHandler(profileService *service.ProfileService, mediaService *service.MediaService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		mediaService:   mediaService,
		log:            logger.For("ProfileHandler"),
	}
}

// GetMe handles GET /users/me
// Returns the session user merged with their profile.
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	me, err := h.profileService.GetMe(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to get profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, me)
}

// UpdateMe handles PATCH /users/me
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateMe(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to update profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// GetProfile handles GET /users/{id}
// isFollowing is false for anonymous viewers.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	profile, err := h.profileService.GetProfile(r.Context(), chi.URLParam(r, "id"), viewerID)
	if err != nil {
		writeServiceError(w, r, h.log, err, "Failed to get profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// UploadAvatar handles POST /users/me/avatar
// Accepts multipart field "avatar", stores a 200x200 JPEG and points avatarUrl at it.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	if h.mediaService == nil {
		writeMediaDisabled(w)
		return
	}

	maxFormSize := int64(model.MaxAvatarSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
			return
		}
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "Avatar exceeds 5MB limit")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "avatar file is required")
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadAvatar(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "Avatar exceeds 5MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequestWithCode(w, model.CodeInvalidImageType, unsupportedImageMessage)
		default:
			writeServiceError(w, r, h.log, err, "Failed to upload avatar")
		}
		return
	}

	profile, err := h.profileService.SetAvatar(r.Context(), userID, upload.URL)
	if err != nil {
		// Do not leave an orphaned object behind.
		if delErr := h.mediaService.DeleteObject(r.Context(), upload.Key); delErr != nil {
			h.log.WithError(delErr).WithField("key", upload.Key).Warn("Failed to clean up avatar object")
		}
		writeServiceError(w, r, h.log, err, "Failed to update avatar")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}
