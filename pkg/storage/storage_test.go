package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutter struct {
	mock.Mock
}

func (m *mockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestValidateDocumentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantErr     bool
	}{
		{"pdf", "application/pdf", false},
		{"pdf with params", "Application/PDF; charset=binary", false},
		{"doc", "application/msword", false},
		{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", false},
		{"png", "image/png", true},
		{"text", "text/plain", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentType(tt.contentType)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDocumentSize(t *testing.T) {
	assert.NoError(t, ValidateDocumentSize(1024))
	assert.NoError(t, ValidateDocumentSize(MaxDocumentSize))
	assert.Error(t, ValidateDocumentSize(MaxDocumentSize+1))
	assert.Error(t, ValidateDocumentSize(0))
}

func TestDocumentKey(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	key := DocumentKey("resumes", "Priya Sharma", "application/pdf", now)
	assert.Regexp(t, regexp.MustCompile(`^resumes/2026/10/priya-sharma-[0-9a-f-]{36}\.pdf$`), key)

	anon := DocumentKey("resumes", "!!!", "application/msword", now)
	assert.Regexp(t, regexp.MustCompile(`^resumes/2026/10/applicant-[0-9a-f-]{36}\.doc$`), anon)
}

func TestUploadDocument(t *testing.T) {
	putter := new(mockPutter)
	client := NewWithPutter(putter, Config{BucketName: "resumes", Region: "ap-south-1"})

	putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return *in.Bucket == "resumes" && *in.Key == "a/b.pdf" && *in.ContentType == "application/pdf" && string(body) == "%PDF"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	url, err := client.UploadDocument(context.Background(), []byte("%PDF"), "a/b.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://resumes.s3.ap-south-1.amazonaws.com/a/b.pdf", url)
	putter.AssertExpectations(t)
}

func TestUploadDocument_Error(t *testing.T) {
	putter := new(mockPutter)
	client := NewWithPutter(putter, Config{BucketName: "resumes", Endpoint: "https://storage.example.com/"})

	putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := client.UploadDocument(context.Background(), []byte("x"), "k.pdf", "application/pdf")
	assert.ErrorContains(t, err, "access denied")
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.edushetra.com", publicBaseURL(Config{PublicBaseURL: "https://cdn.edushetra.com/"}))
	assert.Equal(t, "https://storage.example.com/resumes", publicBaseURL(Config{Endpoint: "https://storage.example.com/", BucketName: "resumes"}))
}
