package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/edushetra/edushetra-api/pkg/metrics"
)

// sensitiveQueryParams are redacted from logs to avoid leaking secrets.
var sensitiveQueryParams = map[string]bool{
	"token": true, "password": true, "secret": true, "key": true,
	"auth": true, "api_key": true, "apikey": true, "formtoken": true,
}

// quietRoutes are polled constantly; their successful requests are logged at debug
var quietRoutes = map[string]bool{
	"/api/healthcheck": true,
	"/api/metrics":     true,
}

// ObservabilityMiddleware instruments HTTP requests with metrics and logging.
// Request bodies are never logged: they carry lead contact details.
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		// route template, not the raw path, keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		duration := metrics.MeasureDuration(start)
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, path, statusStr).Inc()

		if status < 400 && quietRoutes[path] {
			logger.Debug("HTTP request", zap.String("path", path), zap.Int("status", status))
			return
		}

		fields := []zap.Field{
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("response_size", c.Writer.Size()),
		}
		if form := c.Param("form"); form != "" {
			fields = append(fields, zap.String("form", form))
		}

		if status >= 400 {
			if len(c.Params) > 0 {
				params := make(map[string]string, len(c.Params))
				for _, p := range c.Params {
					params[p.Key] = p.Value
				}
				fields = append(fields, zap.Any("route_params", params))
			}

			if sanitized := sanitizeQuery(c); len(sanitized) > 0 {
				fields = append(fields, zap.Any("query_params", sanitized))
			}

			if len(c.Errors) > 0 {
				fields = append(fields, zap.String("error", c.Errors.String()))
			}
		}

		logger.LogHTTPRequest(c.Request.Context(), method, c.Request.URL.Path, status, duration, fields...)
	}
}

func sanitizeQuery(c *gin.Context) map[string]string {
	query := c.Request.URL.Query()
	if len(query) == 0 {
		return nil
	}
	sanitized := make(map[string]string, len(query))
	for k, v := range query {
		if !sensitiveQueryParams[strings.ToLower(k)] && len(v) > 0 {
			sanitized[k] = v[0]
		}
	}
	return sanitized
}
