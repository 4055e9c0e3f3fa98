package trigger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/edushetra/edushetra-api/pkg/httpclient"
	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/edushetra/edushetra-api/pkg/retry"
	"go.uber.org/zap"
)

// inflight lets callers (and tests) wait for outstanding webhook calls
var inflight sync.WaitGroup

// retryConfig governs redelivery of 5xx and network failures
var retryConfig = retry.WebhookConfig()

const deliveryDeadline = 30 * time.Second

// CallAsync notifies a webhook that a lead was stored. The record ID is
// appended to triggerURL, so URLs are configured ending in "?id=" or "/".
// Failures are logged and never reach the submitter.
func CallAsync(triggerURL, form, recordID string, httpClient httpclient.Client) {
	if triggerURL == "" {
		return
	}

	inflight.Add(1)
	go func() {
		defer inflight.Done()

		targetURL := triggerURL + url.QueryEscape(recordID)
		fields := []zap.Field{
			zap.String("url", triggerURL),
			zap.String("form", form),
			zap.String("record_id", recordID),
		}

		ctx, cancel := context.WithTimeout(context.Background(), deliveryDeadline)
		defer cancel()

		var status int
		err := retry.Do(ctx, retryConfig, "trigger_"+form, func() error {
			var callErr error
			status, callErr = deliver(ctx, httpClient, targetURL)
			return callErr
		})
		if err != nil {
			logger.Error("Failed to call trigger URL", append(fields, zap.Int("status_code", status), zap.Error(err))...)
			return
		}
		logger.Info("Trigger URL called successfully", append(fields, zap.Int("status_code", status))...)
	}()
}

// deliver makes one webhook call. 4xx answers are not retried.
func deliver(ctx context.Context, httpClient httpclient.Client, targetURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, http.NoBody)
	if err != nil {
		return 0, retry.Permanent(err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp.StatusCode, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return resp.StatusCode, fmt.Errorf("trigger returned status %d", resp.StatusCode)
	default:
		return resp.StatusCode, retry.Permanent(fmt.Errorf("trigger returned status %d", resp.StatusCode))
	}
}

// Wait blocks until every call started by CallAsync has finished
func Wait() {
	inflight.Wait()
}
