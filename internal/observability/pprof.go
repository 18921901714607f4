package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/config"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
)

// PprofServer exposes net/http/pprof on its own listener. A nil server is
// valid and does nothing.
type PprofServer struct {
	srv    *http.Server
	logger *logging.Logger
}

// NewPprofServer returns nil when pprof is disabled.
func NewPprofServer(cfg config.Config, logger *logging.Logger) *PprofServer {
	if !cfg.PprofEnabled {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &PprofServer{
		srv: &http.Server{
			Addr:              cfg.PprofAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Serve blocks until the server is shut down.
func (p *PprofServer) Serve() {
	if p == nil {
		return
	}
	p.logger.Info("pprof server starting", "addr", p.srv.Addr)
	if err := p.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		p.logger.Error("pprof server failed", "error", err)
	}
}

func (p *PprofServer) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.srv.Shutdown(ctx); err != nil {
		return err
	}
	p.logger.Info("pprof server stopped")
	return nil
}
