package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/edushetra/edushetra-api/internal/repository"
)

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Insert(ctx context.Context, table repository.Table, row repository.Row) (string, error) {
	args := m.Called(ctx, table, row)
	return args.String(0), args.Error(1)
}

func (m *MockSubmissionRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCaptchaVerifier is a mock implementation of CaptchaVerifier
type MockCaptchaVerifier struct {
	mock.Mock
}

func (m *MockCaptchaVerifier) Verify(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockDocumentUploader is a mock implementation of DocumentUploader
type MockDocumentUploader struct {
	mock.Mock
}

func (m *MockDocumentUploader) UploadDocument(ctx context.Context, data []byte, key, contentType string) (string, error) {
	args := m.Called(ctx, data, key, contentType)
	return args.String(0), args.Error(1)
}
