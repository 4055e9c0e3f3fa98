package services

import (
	"context"

	"github.com/edushetra/edushetra-api/internal/models"
	"github.com/edushetra/edushetra-api/pkg/recaptcha"
	"github.com/edushetra/edushetra-api/pkg/storage"
)

// LeadServiceInterface defines the lead form operations
type LeadServiceInterface interface {
	InitForm(ctx context.Context, form, pageURL string) (*FormInit, error)
	SubmitDemoBooking(ctx context.Context, req *models.DemoBookingRequest) (*models.SubmissionResponse, error)
	SubmitEnquiry(ctx context.Context, req *models.EnquiryRequest) (*models.SubmissionResponse, error)
	SubmitCorporateInquiry(ctx context.Context, req *models.CorporateInquiryRequest) (*models.SubmissionResponse, error)
	SubmitTutorApplication(ctx context.Context, req *models.TutorApplicationRequest) (*models.SubmissionResponse, error)
}

// LevelTestServiceInterface defines the level test operations
type LevelTestServiceInterface interface {
	Start(ctx context.Context, pageURL string) (*LevelTestStart, error)
	Submit(ctx context.Context, req *models.LevelTestRequest) (*LevelTestOutcome, error)
}

// UploadServiceInterface defines resume upload operations
type UploadServiceInterface interface {
	UploadResume(ctx context.Context, applicantName, contentType string, data []byte) (string, error)
}

// CaptchaVerifier checks a reCAPTCHA token
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
}

// DocumentUploader stores a document and returns its public URL
type DocumentUploader interface {
	UploadDocument(ctx context.Context, data []byte, key, contentType string) (string, error)
}

// Ensure implementations satisfy interfaces
var (
	_ LeadServiceInterface      = (*LeadService)(nil)
	_ LevelTestServiceInterface = (*LevelTestService)(nil)
	_ UploadServiceInterface    = (*UploadService)(nil)
	_ CaptchaVerifier           = (*recaptcha.Verifier)(nil)
	_ DocumentUploader          = (*storage.StorageClient)(nil)
)
