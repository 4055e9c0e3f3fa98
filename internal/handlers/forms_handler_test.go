package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edushetra/edushetra-api/internal/forms"
	"github.com/edushetra/edushetra-api/internal/models"
	"github.com/edushetra/edushetra-api/internal/services"
	"github.com/edushetra/edushetra-api/internal/submission"
	apperrors "github.com/edushetra/edushetra-api/pkg/errors"
)

func newFormsRouter(service services.LeadServiceInterface) *gin.Engine {
	h := NewFormsHandler(service)
	router := gin.New()
	router.GET("/api/v1/forms/:form", h.InitForm)
	router.GET("/api/v1/forms/:form/schema.json", h.Schema)
	router.POST("/api/v1/forms/book-demo", h.SubmitDemoBooking)
	router.POST("/api/v1/forms/enquire", h.SubmitEnquiry)
	router.POST("/api/v1/forms/for-corporates", h.SubmitCorporateInquiry)
	router.POST("/api/v1/forms/tutor-application", h.SubmitTutorApplication)
	return router
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestFormsHandler_InitForm_UsesOwnQuery(t *testing.T) {
	service := new(MockLeadService)
	service.On("InitForm", mock.Anything, "book-demo", "program=leadership&utm_source=ig").
		Return(&services.FormInit{Form: forms.BookDemo, InstanceID: "inst-1"}, nil).Once()

	w := httptest.NewRecorder()
	newFormsRouter(service).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/api/v1/forms/book-demo?program=leadership&utm_source=ig", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), `"instanceId":"inst-1"`)
	service.AssertExpectations(t)
}

func TestFormsHandler_InitForm_PageParam(t *testing.T) {
	service := new(MockLeadService)
	service.On("InitForm", mock.Anything, "enquire", "/enquire?utm_medium=email").
		Return(&services.FormInit{Form: forms.Enquire}, nil).Once()

	w := httptest.NewRecorder()
	newFormsRouter(service).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/api/v1/forms/enquire?page=%2Fenquire%3Futm_medium%3Demail", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestFormsHandler_InitForm_UnknownForm(t *testing.T) {
	service := new(MockLeadService)
	service.On("InitForm", mock.Anything, "newsletter", "").Return(nil, apperrors.NotFoundError("form newsletter")).Once()

	w := httptest.NewRecorder()
	newFormsRouter(service).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/forms/newsletter", http.NoBody))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFormsHandler_Schema(t *testing.T) {
	router := newFormsRouter(new(MockLeadService))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/forms/for-corporates/schema.json", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/schema+json", w.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "object", doc["type"])
	assert.Contains(t, doc["required"], "companyName")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/forms/newsletter/schema.json", http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFormsHandler_SubmitStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		resp       *models.SubmissionResponse
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			resp:       &models.SubmissionResponse{Success: true, RecordID: "rec-1", Title: "Enquiry sent!"},
			wantStatus: http.StatusOK,
			wantBody:   `"recordId":"rec-1"`,
		},
		{
			name: "validation",
			resp: &models.SubmissionResponse{
				Error:   services.ValidationFailedMessage,
				Details: []models.FieldError{{Field: "consent", Message: "Please agree to our terms"}},
			},
			err:        fmt.Errorf("enquire: %w", apperrors.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"details":[{"field":"consent","message":"Please agree to our terms"}]`,
		},
		{
			name:       "captcha",
			resp:       &models.SubmissionResponse{Error: "Captcha verification failed"},
			err:        services.ErrCaptchaFailed,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Captcha verification failed",
		},
		{
			name:       "in flight",
			resp:       &models.SubmissionResponse{Error: "Submission already in progress"},
			err:        fmt.Errorf("enquire: %w: %w", apperrors.ErrConflict, submission.ErrInFlight),
			wantStatus: http.StatusConflict,
			wantBody:   "already in progress",
		},
		{
			name:       "store failure",
			resp:       &models.SubmissionResponse{Error: forms.ErrorMessage},
			err:        apperrors.UpstreamError("lead store", errors.New("timeout")),
			wantStatus: http.StatusBadGateway,
			wantBody:   forms.ErrorMessage,
		},
		{
			name:       "no response body",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   forms.ErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockLeadService)
			var resp any = tt.resp
			if tt.resp == nil {
				resp = nil
			}
			service.On("SubmitEnquiry", mock.Anything, mock.AnythingOfType("*models.EnquiryRequest")).Return(resp, tt.err).Once()

			w := postJSON(newFormsRouter(service), "/api/v1/forms/enquire",
				`{"name":"Asha","whatsapp":"9876543210","email":"a@example.com","programInterest":"leadership","consent":true}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestFormsHandler_SubmitBindsFields(t *testing.T) {
	service := new(MockLeadService)
	service.On("SubmitTutorApplication", mock.Anything, mock.MatchedBy(func(req *models.TutorApplicationRequest) bool {
		return req.Name == "Kavya" &&
			len(req.Languages) == 2 &&
			req.HasLaptop &&
			req.FormToken == "tok" &&
			req.PageURL == "/become-a-tutor?utm_source=x"
	})).Return(&models.SubmissionResponse{Success: true, RecordID: "rec-2"}, nil).Once()

	w := postJSON(newFormsRouter(service), "/api/v1/forms/tutor-application", `{
		"name":"Kavya","languages":["English","Kannada"],"hasLaptop":true,
		"formToken":"tok","pageUrl":"/become-a-tutor?utm_source=x"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestFormsHandler_SubmitMalformedBody(t *testing.T) {
	service := new(MockLeadService)
	router := newFormsRouter(service)

	w := postJSON(router, "/api/v1/forms/book-demo", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), services.ValidationFailedMessage)

	w = postJSON(router, "/api/v1/forms/for-corporates", `{"companyName":42}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"companyName"`)

	service.AssertNotCalled(t, "SubmitDemoBooking", mock.Anything, mock.Anything)
	service.AssertNotCalled(t, "SubmitCorporateInquiry", mock.Anything, mock.Anything)
}
