package handlers

import (
	"log/slog"
	"net/http"
)

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadHandler accepts a trip image and returns the URL to store as the
// trip's imagePath.
type UploadHandler struct {
	uploader ImageUploader
	log      *slog.Logger
}

func NewUploadHandler(uploader ImageUploader, log *slog.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, log: log}
}

// Upload handles POST /api/upload (multipart, field "file", max 10MB).
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		failJSON(w, http.StatusInternalServerError, "File upload service not available")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		failJSON(w, http.StatusBadRequest, "No file provided")
		return
	}
	file.Close()

	url, err := h.uploader.UploadImage(r.Context(), fileHeader, "wayfare")
	if err != nil {
		h.log.Error("failed to upload image", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		URL:     url,
	})
}
