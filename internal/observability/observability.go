package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-hockey/internal/config"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
)

// Telemetry owns the process-wide trace exporter and profiler.
type Telemetry struct {
	flushTraces  func(context.Context) error
	stopProfiler func() error
}

// Start brings up the exporters enabled in cfg. Disabled ones are no-ops.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}

	flushTraces, err := startUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("start uptrace: %w", err)
	}
	stopProfiler, err := startPyroscope(cfg, logger)
	if err != nil {
		_ = flushTraces(context.Background())
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}

	return &Telemetry{flushTraces: flushTraces, stopProfiler: stopProfiler}, nil
}

// Shutdown stops profiling and flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if err := t.stopProfiler(); err != nil {
		errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
	}
	if err := t.flushTraces(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush traces: %w", err))
	}
	return errors.Join(errs...)
}
