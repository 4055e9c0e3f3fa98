package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/edushetra/edushetra-api/internal/models"
	"github.com/edushetra/edushetra-api/internal/services"
)

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) InitForm(ctx context.Context, form, pageURL string) (*services.FormInit, error) {
	args := m.Called(ctx, form, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FormInit), args.Error(1)
}

func (m *MockLeadService) SubmitDemoBooking(ctx context.Context, req *models.DemoBookingRequest) (*models.SubmissionResponse, error) {
	return m.submission(m.Called(ctx, req))
}

func (m *MockLeadService) SubmitEnquiry(ctx context.Context, req *models.EnquiryRequest) (*models.SubmissionResponse, error) {
	return m.submission(m.Called(ctx, req))
}

func (m *MockLeadService) SubmitCorporateInquiry(ctx context.Context, req *models.CorporateInquiryRequest) (*models.SubmissionResponse, error) {
	return m.submission(m.Called(ctx, req))
}

func (m *MockLeadService) SubmitTutorApplication(ctx context.Context, req *models.TutorApplicationRequest) (*models.SubmissionResponse, error) {
	return m.submission(m.Called(ctx, req))
}

func (m *MockLeadService) submission(args mock.Arguments) (*models.SubmissionResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmissionResponse), args.Error(1)
}

type MockLevelTestService struct {
	mock.Mock
}

func (m *MockLevelTestService) Start(ctx context.Context, pageURL string) (*services.LevelTestStart, error) {
	args := m.Called(ctx, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LevelTestStart), args.Error(1)
}

func (m *MockLevelTestService) Submit(ctx context.Context, req *models.LevelTestRequest) (*services.LevelTestOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LevelTestOutcome), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) UploadResume(ctx context.Context, applicantName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, applicantName, contentType, data)
	return args.String(0), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
