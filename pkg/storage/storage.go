package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/edushetra/edushetra-api/pkg/metrics"
	"github.com/edushetra/edushetra-api/pkg/slug"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxDocumentSize caps resume uploads at 5MB
const MaxDocumentSize = 5 * 1024 * 1024

var documentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// Putter is the part of the S3 API the client needs
type Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config describes an S3-compatible bucket
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	// PublicBaseURL overrides the URL prefix returned for uploaded objects
	PublicBaseURL string
}

// StorageClient uploads tutor documents to S3-compatible object storage
type StorageClient struct {
	s3Client   Putter
	bucketName string
	publicBase string
}

// NewStorageClient creates a client for AWS S3 or any S3-compatible endpoint
func NewStorageClient(cfg Config) (*StorageClient, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	if cfg.Region == "" {
		cfg.Region = "ap-south-1"
	}

	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	logger.Info("Resume storage client initialized",
		zap.String("bucket", cfg.BucketName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", cfg.Region),
	)

	return NewWithPutter(s3.New(opts), cfg), nil
}

// NewWithPutter builds a client around an existing S3 API implementation
func NewWithPutter(p Putter, cfg Config) *StorageClient {
	return &StorageClient{
		s3Client:   p,
		bucketName: cfg.BucketName,
		publicBase: publicBaseURL(cfg),
	}
}

func publicBaseURL(cfg Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.BucketName)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.BucketName, cfg.Region)
}

// UploadDocument stores data under key and returns its public URL
func (s *StorageClient) UploadDocument(ctx context.Context, data []byte, key, contentType string) (string, error) {
	start := time.Now()
	operation := "uploadDocument"

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.ObjectStorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.ObjectStorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(ctx, "object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	metrics.ObjectStorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.ObjectStorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, "object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)

	return fmt.Sprintf("%s/%s", s.publicBase, key), nil
}

// ValidateDocumentType accepts PDF and Word documents
func ValidateDocumentType(contentType string) error {
	if _, ok := documentTypes[normalizeType(contentType)]; !ok {
		return fmt.Errorf("invalid file type: %s. Allowed types: pdf, doc, docx", contentType)
	}
	return nil
}

// ValidateDocumentSize enforces MaxDocumentSize
func ValidateDocumentSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > MaxDocumentSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", size, MaxDocumentSize)
	}
	return nil
}

// DocumentKey builds a collision-free object key like
// "resumes/2026/10/priya-sharma-3f2a....pdf"
func DocumentKey(prefix, ownerName, contentType string, now time.Time) string {
	name := slug.Truncate(slug.Make(ownerName), 48)
	if name == "" {
		name = "applicant"
	}
	ext := documentTypes[normalizeType(contentType)]
	return path.Join(prefix, now.UTC().Format("2006/01"), fmt.Sprintf("%s-%s%s", name, uuid.NewString(), ext))
}

func normalizeType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
