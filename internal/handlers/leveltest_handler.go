package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edushetra/edushetra-api/internal/models"
	"github.com/edushetra/edushetra-api/internal/services"
)

// LevelTestHandler serves the English level test
type LevelTestHandler struct {
	service services.LevelTestServiceInterface
}

// NewLevelTestHandler creates a new level test handler
func NewLevelTestHandler(service services.LevelTestServiceInterface) *LevelTestHandler {
	return &LevelTestHandler{service: service}
}

// Start handles GET /api/v1/level-test
func (h *LevelTestHandler) Start(c *gin.Context) {
	pageURL := c.Query("page")
	if pageURL == "" {
		pageURL = c.Request.URL.RawQuery
	}

	start, err := h.service.Start(c.Request.Context(), pageURL)
	if err != nil {
		respondError(c, statusFor(err), "Internal server error", err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, start)
}

// Submit handles POST /api/v1/level-test
func (h *LevelTestHandler) Submit(c *gin.Context) {
	var req models.LevelTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, services.ValidationFailedMessage, ParseBindErrors(err), err)
		return
	}

	out, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		status := statusFor(err)
		switch status {
		case http.StatusBadRequest:
			respondError(c, status, "Please answer all questions", err)
		case http.StatusConflict:
			respondError(c, status, "Submission already in progress", err)
		default:
			respondError(c, status, "Internal server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, out)
}
