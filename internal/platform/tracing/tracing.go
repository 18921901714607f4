package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Scope starts child spans for one package. Calls without a traced parent
// get a no-op span so helpers never create standalone root spans.
type Scope struct {
	tracer trace.Tracer
	allow  func(name string) bool
}

// NewScope returns a Scope named after the instrumented package. allow
// filters span names; nil allows every non-empty name.
func NewScope(name string, allow func(string) bool) Scope {
	return Scope{tracer: otel.Tracer(name), allow: allow}
}

func (s Scope) Start(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if s.allow != nil && !s.allow(name) {
		return ctx, noopSpan
	}
	return s.tracer.Start(ctx, name)
}
