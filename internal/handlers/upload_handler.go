package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edushetra/edushetra-api/internal/services"
	"github.com/edushetra/edushetra-api/pkg/storage"
)

// UploadHandler accepts tutor resume uploads
type UploadHandler struct {
	service services.UploadServiceInterface
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service services.UploadServiceInterface) *UploadHandler {
	return &UploadHandler{service: service}
}

// UploadResume handles POST /api/v1/tutor-applications/resume as multipart/form-data
// with a "resume" file and the applicant's "name"
func (h *UploadHandler) UploadResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Resume file is required", err)
		return
	}
	defer file.Close()

	if header.Size > storage.MaxDocumentSize {
		respondError(c, http.StatusBadRequest, "File too large (max 5MB)",
			fmt.Errorf("resume of %d bytes", header.Size))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxDocumentSize+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read file", err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.service.UploadResume(c.Request.Context(), c.PostForm("name"), contentType, data)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadRequest {
			respondError(c, status, "Please upload a PDF or Word document up to 5MB", err)
			return
		}
		respondError(c, status, "Failed to upload resume", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
