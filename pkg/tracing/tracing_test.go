package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(Config{ServiceName: "edushetra-api"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan_NoopWhenUninitialised(t *testing.T) {
	ctx := context.Background()
	got, span := StartSpan(ctx, "store.insert", attribute.String("table", "enquiries"))

	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())
	EndSpan(span, errors.New("ignored by noop span"))
}
