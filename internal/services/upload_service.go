package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/edushetra/edushetra-api/pkg/errors"
	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/edushetra/edushetra-api/pkg/metrics"
	"github.com/edushetra/edushetra-api/pkg/storage"
)

// ResumePrefix is the object key prefix of tutor resumes
const ResumePrefix = "resumes"

// UploadService stores tutor resumes in object storage
type UploadService struct {
	uploader DocumentUploader
	now      func() time.Time
}

// NewUploadService creates a new upload service
func NewUploadService(uploader DocumentUploader) *UploadService {
	return &UploadService{uploader: uploader, now: time.Now}
}

// UploadResume validates and stores a resume, returning the URL the client
// puts in the tutor application's resumeUrl
func (s *UploadService) UploadResume(ctx context.Context, applicantName, contentType string, data []byte) (string, error) {
	if err := storage.ValidateDocumentType(contentType); err != nil {
		metrics.ResumeUploads.WithLabelValues("invalid").Inc()
		return "", apperrors.InvalidInputError("resume", err.Error())
	}
	if err := storage.ValidateDocumentSize(int64(len(data))); err != nil {
		metrics.ResumeUploads.WithLabelValues("invalid").Inc()
		return "", apperrors.InvalidInputError("resume", err.Error())
	}

	key := storage.DocumentKey(ResumePrefix, applicantName, contentType, s.now())
	url, err := s.uploader.UploadDocument(ctx, data, key, contentType)
	if err != nil {
		metrics.ResumeUploads.WithLabelValues("error").Inc()
		logger.Error("Failed to upload resume", zap.String("key", key), zap.Error(err))
		return "", apperrors.UpstreamError("object storage", err)
	}

	metrics.ResumeUploads.WithLabelValues("success").Inc()
	logger.Info("Resume uploaded", zap.String("key", key), zap.Int("size_bytes", len(data)))
	return url, nil
}
