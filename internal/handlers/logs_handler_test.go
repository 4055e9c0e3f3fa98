package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edushetra/edushetra-api/pkg/logger"
)

func init() {
	if err := logger.Initialize(logger.Config{Level: "debug", Environment: "development"}); err != nil {
		panic(err)
	}
}

func newLogsRouter(out *bytes.Buffer) *gin.Engine {
	router := gin.New()
	router.POST("/api/v1/logs", NewLogsHandler(out).ReceiveFrontendLogs)
	return router
}

func TestLogsHandler_WritesJSONLines(t *testing.T) {
	var out bytes.Buffer

	w := postJSON(newLogsRouter(&out), "/api/v1/logs", `{"logs":[
		{"timestamp":"2026-10-15T09:00:00Z","level":"error","message":"Form submission error","context":{"form":"enquire","msg":"ignored"}},
		{"level":"warn","message":"slow page"}
	]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"received":2}`, w.Body.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "2026-10-15T09:00:00Z", first["ts"])
	assert.Equal(t, "Form submission error", first["msg"])
	assert.Equal(t, "enquire", first["form"])
	assert.Equal(t, "website", first["service"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.NotEmpty(t, second["ts"])
}

func TestLogsHandler_RejectsBadBatches(t *testing.T) {
	var entries []string
	for i := 0; i < 101; i++ {
		entries = append(entries, fmt.Sprintf(`{"level":"info","message":"m%d"}`, i))
	}

	tests := []struct {
		name string
		body string
	}{
		{"empty", `{"logs":[]}`},
		{"missing", `{}`},
		{"unknown level", `{"logs":[{"level":"fatal","message":"x"}]}`},
		{"too many", `{"logs":[` + strings.Join(entries, ",") + `]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			w := postJSON(newLogsRouter(&out), "/api/v1/logs", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, out.String())
		})
	}
}
