package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/fantasy-hockey/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = tracing.NewScope("fantasy-hockey/internal/interfaces/httpapi", shouldCreateHTTPAPISpan)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
