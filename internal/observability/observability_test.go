package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/fantasy-hockey/internal/config"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
)

func TestStart_DisabledExportersAreNoops(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "fantasy-hockey-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
		UptraceEnabled: true,
	}

	telemetry, err := Start(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if err := telemetry.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown telemetry: %v", err)
	}
}

func TestNilTelemetryShutdown(t *testing.T) {
	var telemetry *Telemetry
	if err := telemetry.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil telemetry must shut down cleanly: %v", err)
	}
}

func TestPprofServer_DisabledIsNil(t *testing.T) {
	srv := NewPprofServer(config.Config{PprofAddr: ":6060"}, nil)
	if srv != nil {
		t.Fatalf("expected no pprof server when disabled")
	}
	srv.Serve()
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown nil server: %v", err)
	}
}

func TestPprofServer_EnabledShutsDown(t *testing.T) {
	srv := NewPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if srv == nil {
		t.Fatalf("expected pprof server")
	}

	done := make(chan struct{})
	go func() {
		srv.Serve()
		close(done)
	}()
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	<-done
}
