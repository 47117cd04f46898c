// Package tracing provides OpenTelemetry tracing setup and HTTP middleware.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer for the application.
var tracer = otel.Tracer("briefcast")

// GetTracer returns the global tracer for creating spans.
func GetTracer() trace.Tracer {
	return tracer
}

// Init installs a TracerProvider as the OTel global and returns a shutdown
// function. Spans are kept in-process (no exporter configured); external
// collectors can be attached later without touching call sites.
func Init(ctx context.Context) func(context.Context) error {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
