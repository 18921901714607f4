package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-hockey/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = tracing.NewScope("fantasy-hockey/internal/usecase", nil)

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name)
}
