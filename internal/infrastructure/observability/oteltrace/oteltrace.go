package oteltrace

import (
	"context"

	"github.com/Zhima-Mochi/ims/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New wraps the globally configured OTel tracer. Without an SDK tracer
// provider installed this degrades to no-op spans, which is fine for the
// demo deployment.
func New(name string) observability.Tracer {
	if name == "" {
		name = "ims"
	}
	return &tracer{t: otel.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
