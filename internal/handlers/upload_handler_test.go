package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/edushetra/edushetra-api/pkg/errors"
)

func newUploadRouter(service *MockUploadService) *gin.Engine {
	router := gin.New()
	router.POST("/api/v1/tutor-applications/resume", NewUploadHandler(service).UploadResume)
	return router
}

func multipartResume(t *testing.T, name, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", name))

	if data != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="resume"; filename="resume.pdf"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestUploadHandler_UploadResume(t *testing.T) {
	service := new(MockUploadService)
	data := []byte("%PDF-1.7")
	service.On("UploadResume", mock.Anything, "Kavya Rao", "application/pdf", data).
		Return("https://cdn.example.com/resumes/2026/10/kavya-rao.pdf", nil).Once()

	body, ct := multipartResume(t, "Kavya Rao", "application/pdf", data)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tutor-applications/resume", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	newUploadRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"url":"https://cdn.example.com/resumes/2026/10/kavya-rao.pdf"}`, w.Body.String())
	service.AssertExpectations(t)
}

func TestUploadHandler_MissingFile(t *testing.T) {
	service := new(MockUploadService)
	body, ct := multipartResume(t, "Kavya", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tutor-applications/resume", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	newUploadRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "UploadResume", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadHandler_RejectedType(t *testing.T) {
	service := new(MockUploadService)
	service.On("UploadResume", mock.Anything, "Kavya", "image/png", mock.Anything).
		Return("", apperrors.InvalidInputError("resume", "invalid file type")).Once()

	body, ct := multipartResume(t, "Kavya", "image/png", []byte("png"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tutor-applications/resume", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	newUploadRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PDF or Word")
}
