package http

import (
	"github.com/LerianStudio/mdispatch/common"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TelemetryMiddleware wraps each request in a trace span named after the
// method and path, and makes the tracer available through the request's
// user context for the handler chain (ultimately the dispatch core).
type TelemetryMiddleware struct {
	ServiceName string
}

// NewTelemetryMiddleware creates a new instance of TelemetryMiddleware.
func NewTelemetryMiddleware(serviceName string) *TelemetryMiddleware {
	return &TelemetryMiddleware{ServiceName: serviceName}
}

// WithTelemetry starts a span for the incoming request and attaches the
// tracer to the context.
func (tm *TelemetryMiddleware) WithTelemetry(c *fiber.Ctx) error {
	tracer := otel.Tracer(tm.ServiceName)
	ctx := common.ContextWithTracer(c.UserContext(), tracer)

	ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path())
	defer span.End()

	c.SetUserContext(ctx)

	return c.Next()
}

// EndTracingSpans ends the span started for the current request, deferred
// to run after the rest of the middleware chain.
func (tm *TelemetryMiddleware) EndTracingSpans(c *fiber.Ctx) error {
	err := c.Next()

	trace.SpanFromContext(c.UserContext()).End()

	return err
}
