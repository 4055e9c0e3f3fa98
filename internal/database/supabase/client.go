// Package supabase writes lead rows through the hosted store's REST API (PostgREST).
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/edushetra/edushetra-api/internal/repository"
	"github.com/edushetra/edushetra-api/pkg/errors"
	"github.com/edushetra/edushetra-api/pkg/httpclient"
	"github.com/edushetra/edushetra-api/pkg/metrics"
)

// maxErrorBody caps how much of an error response is kept
const maxErrorBody = 4 << 10

// Config identifies the project and key used for writes
type Config struct {
	URL        string
	ServiceKey string
	// Schema is sent as Content-Profile when not "public"
	Schema string
}

// Client is a minimal PostgREST client: insert and ping
type Client struct {
	baseURL    string
	serviceKey string
	schema     string
	httpClient httpclient.Client
}

var _ repository.LeadStore = (*Client)(nil)

// NewClient creates a REST lead store client
func NewClient(cfg Config, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		schema:     cfg.Schema,
		httpClient: httpClient,
	}
}

// RemoteError is a non-2xx answer from the REST API
type RemoteError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("supabase: %d %s: %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("supabase: %d: %s", e.Status, msg)
}

// Insert posts one row to /rest/v1/<table> and returns the id of the created row
func (c *Client) Insert(ctx context.Context, table repository.Table, row repository.Row) (string, error) {
	start := time.Now()
	operation := "insert_" + string(table)

	body, err := json.Marshal(row.Map())
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return "", fmt.Errorf("failed to encode row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/"+string(table), bytes.NewReader(body))
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	if c.schema != "" && c.schema != "public" {
		req.Header.Set("Content-Profile", c.schema)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return "", errors.UpstreamError("supabase", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return "", errors.UpstreamError("supabase", decodeError(resp))
	}

	var created []struct {
		ID any `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return "", errors.UpstreamError("supabase", fmt.Errorf("failed to decode response: %w", err))
	}
	if len(created) == 0 || created[0].ID == nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return "", errors.UpstreamError("supabase", fmt.Errorf("insert into %s returned no row", table))
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return fmt.Sprint(created[0].ID), nil
}

// Ping fetches the REST root, which answers 200 for a valid key
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rest/v1/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordMetrics("ping", "error", metrics.MeasureDuration(start))
		return errors.UpstreamError("supabase", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode != http.StatusOK {
		recordMetrics("ping", "error", metrics.MeasureDuration(start))
		return errors.UpstreamError("supabase", &RemoteError{Status: resp.StatusCode})
	}
	recordMetrics("ping", "success", metrics.MeasureDuration(start))
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
}

func decodeError(resp *http.Response) error {
	remote := &RemoteError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, remote); err != nil && len(raw) > 0 {
		remote.Message = strings.TrimSpace(string(raw))
	}
	remote.Status = resp.StatusCode
	return remote
}

func recordMetrics(operation, status string, duration float64) {
	metrics.StoreRequestDuration.WithLabelValues("supabase_"+operation, status).Observe(duration)
	metrics.StoreRequestTotal.WithLabelValues("supabase_"+operation, status).Inc()
}
