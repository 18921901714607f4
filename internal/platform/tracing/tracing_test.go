package tracing

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func tracedContext() context.Context {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestScope_NoParentYieldsNoopSpan(t *testing.T) {
	t.Parallel()

	scope := NewScope("test", nil)
	ctx := context.Background()
	got, span := scope.Start(ctx, "usecase.LineupService.View")
	defer span.End()

	if got != ctx {
		t.Fatalf("context must be returned unchanged without a parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span")
	}
}

func TestScope_FilterAndEmptyName(t *testing.T) {
	t.Parallel()

	scope := NewScope("test", func(name string) bool {
		return strings.HasPrefix(name, "httpapi.Handler.")
	})
	parent := tracedContext()

	for _, name := range []string{"", "  ", "httpapi.writeJSON"} {
		got, span := scope.Start(parent, name)
		span.End()
		if got != parent {
			t.Fatalf("span %q must be skipped", name)
		}
	}

	_, span := scope.Start(parent, "httpapi.Handler.GetLineup")
	defer span.End()
	if span.SpanContext().TraceID() != (trace.TraceID{1}) {
		t.Fatalf("allowed span must stay in the parent trace")
	}
}
