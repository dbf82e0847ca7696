package oteltrace

import (
	"context"

	"github.com/commercelab/orderflow/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New returns a Tracer backed by the global OTel tracer provider. Wiring an
// SDK tracer provider with an exporter is the deployment's responsibility;
// without one the spans are no-ops.
func New(name string) observability.Tracer {
	if name == "" {
		name = "orderflow"
	}
	return &tracer{t: otel.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
