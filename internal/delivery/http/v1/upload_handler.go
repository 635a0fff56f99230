package v1

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"gamestore-admin/pkg/logger"
	"gamestore-admin/pkg/utils"
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
	}
)

// Uploader stores a processed image and returns its public URL.
type Uploader interface {
	UploadBuffer(ctx context.Context, data []byte, contentType, originalName string) (string, error)
}

type UploadHandler struct {
	storage       Uploader
	maxUploadSize int64
}

// NewUploadHandler accepts a nil storage; uploads then answer 503.
func NewUploadHandler(s Uploader, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:       s,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

// UploadFile stores a product image and returns the URL to put in image_url.
// POST /admin/v1/uploads (multipart, field "file")
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context())
	if h.storage == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		log.Warn().Err(err).Msg("Upload rejected: invalid multipart form")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	log.Debug().
		Str("filename", header.Filename).
		Str("content_type", contentType).
		Int64("size", header.Size).
		Msg("Upload received")
	if !allowedMimeTypes[contentType] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	data, newContentType, err := utils.ProcessImage(r.Context(), file, header.Filename)
	if err != nil {
		log.Error().Err(err).Msg("Image processing failed")
		utils.WriteError(w, http.StatusUnprocessableEntity, "Failed to process image")
		return
	}

	url, err := h.storage.UploadBuffer(r.Context(), data, newContentType, header.Filename)
	if err != nil {
		fail(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
