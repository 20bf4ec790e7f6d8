package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/service"
	"socialhub_backend/internal/transport/http/middleware"
)

const unsupportedImageMessage = "Unsupported image type. Allowed: jpeg, png, gif, webp"

type MediaHandler struct {
	mediaService *service.MediaService
	log          *logrus.Entry
}

// NewMediaHandler accepts a nil service; every route then answers 503.
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, log: logger.For("MediaHandler")}
}

// PresignPostUpload handles POST /media/presign
// Returns a presigned URL for uploading post media directly to R2.
func (h *MediaHandler) PresignPostUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	if h.mediaService == nil {
		writeMediaDisabled(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB is plenty for JSON
	var req model.PresignPostUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.ContentType = strings.TrimSpace(req.ContentType)
	if req.ContentType == "" {
		httputil.WriteBadRequest(w, "contentType is required")
		return
	}
	if req.FileSize > model.MaxPostMediaSize {
		httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "Media exceeds 10MB limit")
		return
	}

	res, err := h.mediaService.PresignPostUpload(r.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, model.ErrInvalidImageType) {
			httputil.WriteBadRequestWithCode(w, model.CodeInvalidImageType, unsupportedImageMessage)
			return
		}
		writeServiceError(w, r, h.log, err, "Failed to create upload URL")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

// PresignPostUploadBatch handles POST /media/presign/batch
// Returns presigned URLs for every media item of one post.
func (h *MediaHandler) PresignPostUploadBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	if h.mediaService == nil {
		writeMediaDisabled(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req model.PresignPostUploadBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if len(req.Items) == 0 {
		httputil.WriteBadRequest(w, "items is required")
		return
	}
	if len(req.Items) > model.MaxPostMediaCount {
		httputil.WriteBadRequest(w, fmt.Sprintf("too many items (max %d)", model.MaxPostMediaCount))
		return
	}

	items := make([]model.PresignPostUploadResponse, 0, len(req.Items))
	for i, item := range req.Items {
		contentType := strings.TrimSpace(item.ContentType)
		if contentType == "" {
			httputil.WriteBadRequest(w, fmt.Sprintf("items[%d].contentType is required", i))
			return
		}
		if item.FileSize > model.MaxPostMediaSize {
			httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, fmt.Sprintf("items[%d] exceeds 10MB limit", i))
			return
		}

		res, err := h.mediaService.PresignPostUpload(r.Context(), userID, contentType)
		if err != nil {
			if errors.Is(err, model.ErrInvalidImageType) {
				httputil.WriteBadRequestWithCode(w, model.CodeInvalidImageType, fmt.Sprintf("items[%d]: %s", i, unsupportedImageMessage))
				return
			}
			writeServiceError(w, r, h.log, err, "Failed to create upload URL")
			return
		}
		items = append(items, *res)
	}

	httputil.WriteJSON(w, http.StatusOK, model.PresignPostUploadBatchResponse{Items: items})
}

func writeMediaDisabled(w http.ResponseWriter) {
	httputil.WriteServiceUnavailable(w, model.CodeMediaDisabled, "Media storage is not configured")
}
