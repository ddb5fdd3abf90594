package common

import (
	"context"
	"testing"

	"github.com/LerianStudio/mdispatch/common/mlog"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
)

func TestNewLoggerFromContext_DefaultsToNoneLogger(t *testing.T) {
	logger := NewLoggerFromContext(context.Background())
	assert.IsType(t, &mlog.NoneLogger{}, logger)
}

func TestContextWithLogger_RoundTrips(t *testing.T) {
	logger := &mlog.GoLogger{}

	ctx := ContextWithLogger(context.Background(), logger)

	got := NewLoggerFromContext(ctx)
	assert.Same(t, logger, got)
}

func TestContextWithTracer_RoundTrips(t *testing.T) {
	tracer := otel.Tracer("mdispatch-test")

	ctx := ContextWithTracer(context.Background(), tracer)

	got := NewTracerFromContext(ctx)
	assert.Equal(t, tracer, got)
}

func TestContextWithLoggerAndTracer_Coexist(t *testing.T) {
	logger := &mlog.GoLogger{}
	tracer := otel.Tracer("mdispatch-test")

	ctx := ContextWithLogger(context.Background(), logger)
	ctx = ContextWithTracer(ctx, tracer)

	assert.Same(t, logger, NewLoggerFromContext(ctx))
	assert.Equal(t, tracer, NewTracerFromContext(ctx))
}
