package model

import (
	"errors"
	"fmt"
)

const (
	MaxAvatarSizeBytes = 5 * 1024 * 1024
	AvatarWidth        = 200
	AvatarHeight       = 200
	AvatarFolder       = "avatars"
	AvatarExt          = ".jpg"
	AvatarCacheControl = "public, max-age=31536000"
)

// Post media limits for direct-to-bucket uploads.
const (
	MaxPostMediaSize  = 10 * 1024 * 1024
	MaxPostMediaCount = 4
	PostMediaFolder   = "posts"
	PresignExpirySecs = 900
)

// Supported image content types for upload validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
)

var allowedImageTypes = map[string]string{
	ContentTypeJPEG: ".jpg",
	ContentTypePNG:  ".png",
	ContentTypeGIF:  ".gif",
	ContentTypeWebP: ".webp",
}

// Error codes for HTTP responses
const (
	CodeFileTooLarge     = "FILE_TOO_LARGE"
	CodeInvalidImageType = "INVALID_IMAGE_TYPE"
	CodeMediaDisabled    = "MEDIA_DISABLED"
)

var (
	ErrFileTooLarge     = fmt.Errorf("%w: file too large", ErrInvalidOperation)
	ErrInvalidImageType = fmt.Errorf("%w: invalid image type", ErrInvalidOperation)
	ErrMediaDisabled    = errors.New("media storage is not configured")
)

// UploadResult is the stored object location.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// PresignPostUploadRequest asks for a presigned PUT for one media item.
// The client uploads to UploadURL and then sends PublicURL in POST /posts mediaUrls.
type PresignPostUploadRequest struct {
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
}

type PresignPostUploadResponse struct {
	UploadURL  string `json:"uploadUrl"`
	PublicURL  string `json:"publicUrl"`
	Key        string `json:"key"`
	ExpiresInS int    `json:"expiresIn"`
}

type PresignPostUploadBatchRequest struct {
	Items []PresignPostUploadRequest `json:"items"`
}

type PresignPostUploadBatchResponse struct {
	Items []PresignPostUploadResponse `json:"items"`
}

// IsAllowedImageType reports if the provided content type is supported
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// ImageExt returns the file extension used for stored objects of contentType.
func ImageExt(contentType string) string {
	return allowedImageTypes[contentType]
}
