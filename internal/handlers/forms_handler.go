package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edushetra/edushetra-api/internal/forms"
	"github.com/edushetra/edushetra-api/internal/models"
	"github.com/edushetra/edushetra-api/internal/services"
	apperrors "github.com/edushetra/edushetra-api/pkg/errors"
)

// FormsHandler serves the lead form endpoints
type FormsHandler struct {
	service services.LeadServiceInterface
}

// NewFormsHandler creates a new forms handler
func NewFormsHandler(service services.LeadServiceInterface) *FormsHandler {
	return &FormsHandler{service: service}
}

// InitForm handles GET /api/v1/forms/:form. The page URL the form is rendered on
// is taken from ?page=, or else the request's own query string is used, so both
// /forms/book-demo?page=%2Fbook-demo%3Fprogram%3D1-on-1 and
// /forms/book-demo?program=1-on-1 seed the same way.
func (h *FormsHandler) InitForm(c *gin.Context) {
	pageURL := c.Query("page")
	if pageURL == "" {
		pageURL = c.Request.URL.RawQuery
	}

	opened, err := h.service.InitForm(c.Request.Context(), c.Param("form"), pageURL)
	if err != nil {
		respondError(c, statusFor(err), http.StatusText(statusFor(err)), err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, opened)
}

// Schema handles GET /api/v1/forms/:form/schema.json
func (h *FormsHandler) Schema(c *gin.Context) {
	name := forms.Name(c.Param("form"))
	if _, ok := forms.Get(name); !ok {
		respondError(c, http.StatusNotFound, "Form not found", apperrors.NotFoundError("form "+string(name)))
		return
	}

	doc, err := forms.JSONSchema(name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/schema+json", doc)
}

// SubmitDemoBooking handles POST /api/v1/forms/book-demo
func (h *FormsHandler) SubmitDemoBooking(c *gin.Context) {
	var req models.DemoBookingRequest
	if !bindForm(c, &req) {
		return
	}
	resp, err := h.service.SubmitDemoBooking(c.Request.Context(), &req)
	writeSubmission(c, resp, err)
}

// SubmitEnquiry handles POST /api/v1/forms/enquire
func (h *FormsHandler) SubmitEnquiry(c *gin.Context) {
	var req models.EnquiryRequest
	if !bindForm(c, &req) {
		return
	}
	resp, err := h.service.SubmitEnquiry(c.Request.Context(), &req)
	writeSubmission(c, resp, err)
}

// SubmitCorporateInquiry handles POST /api/v1/forms/for-corporates
func (h *FormsHandler) SubmitCorporateInquiry(c *gin.Context) {
	var req models.CorporateInquiryRequest
	if !bindForm(c, &req) {
		return
	}
	resp, err := h.service.SubmitCorporateInquiry(c.Request.Context(), &req)
	writeSubmission(c, resp, err)
}

// SubmitTutorApplication handles POST /api/v1/forms/tutor-application
func (h *FormsHandler) SubmitTutorApplication(c *gin.Context) {
	var req models.TutorApplicationRequest
	if !bindForm(c, &req) {
		return
	}
	resp, err := h.service.SubmitTutorApplication(c.Request.Context(), &req)
	writeSubmission(c, resp, err)
}

func bindForm(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, services.ValidationFailedMessage, ParseBindErrors(err), err)
		return false
	}
	return true
}

func writeSubmission(c *gin.Context, resp *models.SubmissionResponse, err error) {
	if err != nil {
		status := statusFor(err)
		if resp == nil {
			respondError(c, status, forms.ErrorMessage, err)
			return
		}
		attachError(c, err)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
