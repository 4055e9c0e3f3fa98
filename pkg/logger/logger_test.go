package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestInitialize_InvalidLevel(t *testing.T) {
	err := Initialize(Config{Level: "loud", Environment: "development"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestInitialize_ProductionWritesRotatedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Config{
		Level:       "info",
		LogDir:      dir,
		Environment: "production",
		ServiceName: "edushetra-api",
		MaxSizeMB:   1,
	}))
	defer func() { Log = zap.NewNop() }()

	Info("lead stored", zap.String("form", "book-demo"))
	Error("store unreachable")
	Sync()

	appLog, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(appLog), "lead stored")
	assert.Contains(t, string(appLog), `"service.name":"edushetra-api"`)

	errorLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errorLog), "store unreachable")
	assert.NotContains(t, string(errorLog), "lead stored")
}

func TestTraceFields(t *testing.T) {
	assert.Empty(t, traceFields(context.Background()))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	fields := traceFields(ctx)
	require.Len(t, fields, 2)
	assert.Equal(t, "trace_id", fields[0].Key)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields[0].String)
}
