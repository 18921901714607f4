package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fantasy-hockey/external/fantasyapi"
	"github.com/riskibarqy/fantasy-hockey/internal/config"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/score"
	cacherepo "github.com/riskibarqy/fantasy-hockey/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-hockey/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-hockey/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-hockey/internal/observability"
	basecache "github.com/riskibarqy/fantasy-hockey/internal/platform/cache"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-hockey/internal/usecase"
	"github.com/sourcegraph/conc"
)

const shutdownTimeout = 10 * time.Second

type backends struct {
	players player.Repository
	matches match.Repository
	lineups lineup.Repository
	scores  score.Repository
}

// App holds the wired service: the HTTP server plus its background
// workers.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	server    *http.Server
	pprof     *observability.PprofServer
	lineups   *usecase.LineupService
	refresher *usecase.MatchRefresher
	caches    []basecache.Sweeper
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newBackends(cfg, logger)
	if err != nil {
		return nil, err
	}

	var caches []basecache.Sweeper
	if cfg.CacheEnabled {
		rosterCache := basecache.NewStore[[]player.Player](cfg.CacheTTL)
		scheduleCache := basecache.NewStore[[]match.Match](min(cfg.CacheTTL, cfg.MatchRefreshInterval))
		repos.players = cacherepo.NewPlayerRepository(repos.players, rosterCache)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, scheduleCache)
		caches = append(caches, rosterCache, scheduleCache)
	}

	catalog := usecase.NewRosterCatalog(repos.players, cfg.RosterPrefetchWorkers, logger)
	lineupSvc := usecase.NewLineupService(catalog, repos.lineups, repos.matches, usecase.LineupServiceConfig{
		SessionIdleTTL: cfg.SessionIdleTTL,
	}, logger)
	scoreSvc := usecase.NewScoreService(repos.scores)

	handler := httpapi.NewHandler(lineupSvc, scoreSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		pprof:     observability.NewPprofServer(cfg, logger),
		lineups:   lineupSvc,
		refresher: usecase.NewMatchRefresher(lineupSvc, cfg.MatchRefreshInterval, logger.With("component", "match_refresher")),
		caches:    caches,
	}, nil
}

func newBackends(cfg config.Config, logger *logging.Logger) (backends, error) {
	switch cfg.BackendMode {
	case config.BackendMemory:
		players := memory.NewPlayerRepository(memory.SeedPlayers())
		matches := memory.NewMatchRepository(memory.SeedMatches(time.Now()), time.Now)
		lineups := memory.NewLineupRepository(players, matches)
		logger.Info("using in-memory fantasy backend", "championship_year", memory.ChampionshipYear)
		return backends{
			players: players,
			matches: matches,
			lineups: lineups,
			scores:  memory.NewScoreRepository(players, matches, lineups, memory.SeedRivals()),
		}, nil
	case config.BackendHTTP:
		client := fantasyapi.NewClient(fantasyapi.ClientConfig{
			BaseURL:    cfg.BackendBaseURL,
			Token:      cfg.BackendToken,
			Timeout:    cfg.BackendTimeout,
			MaxRetries: cfg.BackendMaxRetries,
			Logger:     logger.With("dependency", "fantasy-backend"),
			RateLimit: resilience.RateLimitConfig{
				RequestsPerSecond: cfg.BackendRateLimitRPS,
				Burst:             cfg.BackendRateLimitBurst,
			},
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.BackendCircuitEnabled,
				FailureThreshold: cfg.BackendCircuitFailureCount,
				OpenTimeout:      cfg.BackendCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.BackendCircuitHalfOpenMaxReq,
			},
		})
		logger.Info("using fantasy backend", "base_url", cfg.BackendBaseURL)
		return backends{
			players: fantasyapi.NewPlayerRepository(client),
			matches: fantasyapi.NewMatchRepository(client),
			lineups: fantasyapi.NewLineupRepository(client),
			scores:  fantasyapi.NewScoreRepository(client),
		}, nil
	default:
		return backends{}, fmt.Errorf("unsupported backend mode %q", cfg.BackendMode)
	}
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and runs the background workers until ctx is done or
// the server fails, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	var wg conc.WaitGroup
	wg.Go(func() {
		a.refresher.Run(ctx)
	})
	wg.Go(func() {
		a.sweepCaches(ctx)
	})
	wg.Go(a.pprof.Serve)
	wg.Go(func() {
		a.logger.Info("http server starting", "addr", a.server.Addr, "backend", a.cfg.BackendMode)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
		a.logger.Error("http server failed", "error", runErr)
	}
	cancel()

	shutdownErr := a.shutdown()
	wg.Wait()
	a.logger.Info("http server stopped", "sessions", a.lineups.SessionCount())

	return errors.Join(runErr, shutdownErr)
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.pprof.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown pprof server: %w", err))
	}
	return errors.Join(errs...)
}

// sweepCaches drops expired cache entries once per roster TTL.
func (a *App) sweepCaches(ctx context.Context) {
	if len(a.caches) == 0 {
		return
	}

	ticker := time.NewTicker(a.cfg.CacheTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept := 0
			for _, store := range a.caches {
				swept += store.Sweep()
			}
			if swept > 0 {
				a.logger.DebugContext(ctx, "expired cache entries swept", "count", swept)
			}
		}
	}
}
