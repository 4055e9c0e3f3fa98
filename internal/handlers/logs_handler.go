package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/pkg/logger"
)

// LogsHandler receives error reports from the website and appends them as JSON
// lines to a writer, normally a rotating frontend.log
type LogsHandler struct {
	out io.Writer
	mu  sync.Mutex
}

type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level" binding:"required,oneof=debug info warn error"`
	Message   string         `json:"message" binding:"required"`
	Context   map[string]any `json:"context,omitempty"`
}

type LogBatchRequest struct {
	Logs []LogEntry `json:"logs" binding:"required,max=100,dive"`
}

func NewLogsHandler(out io.Writer) *LogsHandler {
	return &LogsHandler{
		out: out,
	}
}

// ReceiveFrontendLogs handles POST /api/v1/logs
func (h *LogsHandler) ReceiveFrontendLogs(c *gin.Context) {
	var req LogBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", ParseBindErrors(err), err)
		return
	}

	if len(req.Logs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No logs provided"})
		return
	}

	if err := h.writeLogs(req.Logs); err != nil {
		logger.Error("Failed to write frontend logs", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to write logs", err)
		return
	}

	logger.Debug("Received frontend logs", zap.Int("count", len(req.Logs)))
	c.JSON(http.StatusOK, gin.H{"success": true, "received": len(req.Logs)})
}

func (h *LogsHandler) writeLogs(logs []LogEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	encoder := json.NewEncoder(h.out)
	for _, entry := range logs {
		ts := entry.Timestamp
		if ts == "" {
			ts = time.Now().UTC().Format(time.RFC3339)
		}
		logLine := map[string]any{
			"ts":      ts,
			"level":   entry.Level,
			"msg":     entry.Message,
			"service": "website",
		}

		// context never overrides the fixed keys
		for k, v := range entry.Context {
			if _, taken := logLine[k]; !taken {
				logLine[k] = v
			}
		}

		if err := encoder.Encode(logLine); err != nil {
			return fmt.Errorf("failed to encode log entry: %w", err)
		}
	}

	return nil
}
