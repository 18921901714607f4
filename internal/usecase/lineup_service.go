package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultSessionIdleTTL   = 2 * time.Hour
	sessionFanOutGoroutines = 8
)

type LineupServiceConfig struct {
	SessionIdleTTL time.Duration
}

// LineupService owns the per-user lineup sessions and the shared match
// schedule they derive locks from.
type LineupService struct {
	catalog *RosterCatalog
	lineups lineup.Repository
	matches match.Repository
	cfg     LineupServiceConfig
	logger  *logging.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*LineupSession

	today atomic.Pointer[[]match.Match]
}

func NewLineupService(
	catalog *RosterCatalog,
	lineups lineup.Repository,
	matches match.Repository,
	cfg LineupServiceConfig,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SessionIdleTTL <= 0 {
		cfg.SessionIdleTTL = defaultSessionIdleTTL
	}
	return &LineupService{
		catalog:  catalog,
		lineups:  lineups,
		matches:  matches,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*LineupSession),
	}
}

// Session returns the caller's session, creating it on first use.
func (s *LineupService) Session(ctx context.Context) (*LineupSession, error) {
	token, ok := BearerTokenFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}
	key := CallerKey(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}
	sess := NewLineupSession(s.catalog, s.lineups, s.matches, s.logger, s.now)
	if today := s.today.Load(); today != nil {
		sess.ApplyMatches(*today)
	}
	s.sessions[key] = sess
	return sess, nil
}

// View returns the caller's read model. A session without an active or
// loading day opens the day of the first of today's matches.
func (s *LineupService) View(ctx context.Context) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.View")
	defer span.End()

	sess, err := s.Session(ctx)
	if err != nil {
		return SessionView{}, err
	}
	if _, active := sess.ActiveDay(); active {
		return sess.View(), nil
	}

	today := s.TodayMatches(ctx)
	if len(today) == 0 {
		return sess.View(), nil
	}
	return sess.OpenDayIfInactive(ctx, today[0].Day)
}

func (s *LineupService) OpenDay(ctx context.Context, day int) (SessionView, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return SessionView{}, err
	}
	return sess.OpenDay(ctx, day)
}

func (s *LineupService) Pick(ctx context.Context, slot lineup.SlotKey, playerID int64) (SessionView, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return SessionView{}, err
	}
	return sess.Pick(ctx, slot, playerID)
}

func (s *LineupService) Remove(ctx context.Context, slot lineup.SlotKey) (SessionView, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return SessionView{}, err
	}
	return sess.Remove(ctx, slot)
}

func (s *LineupService) ToggleCaptain(ctx context.Context, slot lineup.SlotKey) (SessionView, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return SessionView{}, err
	}
	return sess.ToggleCaptain(ctx, slot)
}

func (s *LineupService) Save(ctx context.Context) (SessionView, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return SessionView{}, err
	}
	return sess.Save(ctx)
}

func (s *LineupService) Candidates(ctx context.Context, query CandidateQuery) ([]Candidate, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}
	// lock flags need the schedule even before the refresher's first tick
	if s.today.Load() == nil {
		s.TodayMatches(ctx)
	}
	return sess.Candidates(ctx, query)
}

// TodayMatches returns the cached schedule, fetching it once when the
// refresher has not run yet. Failures yield an empty schedule.
func (s *LineupService) TodayMatches(ctx context.Context) []match.Match {
	if today := s.today.Load(); today != nil {
		return append([]match.Match(nil), (*today)...)
	}
	items, err := s.RefreshMatches(ctx)
	if err != nil {
		return nil
	}
	return items
}

// MatchesByDay passes through to the schedule. Failures yield an empty list.
func (s *LineupService) MatchesByDay(ctx context.Context, day int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.MatchesByDay")
	defer span.End()

	if day <= 0 {
		return nil, fmt.Errorf("%w: day must be greater than zero", ErrInvalidInput)
	}
	items, err := s.matches.ListByDay(ctx, day)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch matches by day failed", "day", day, "error", err)
		return []match.Match{}, nil
	}
	return items, nil
}

// RefreshMatches fetches today's matches and hands them to every session.
// On failure the previous schedule stays in place.
func (s *LineupService) RefreshMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.RefreshMatches")
	defer span.End()

	items, err := s.matches.ListToday(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "refresh today's matches failed", "error", err)
		return nil, fmt.Errorf("list today's matches: %w", err)
	}
	snapshot := append([]match.Match(nil), items...)
	s.today.Store(&snapshot)

	sessions := s.liveSessions()
	fanOut := pool.New().WithMaxGoroutines(sessionFanOutGoroutines)
	for _, sess := range sessions {
		fanOut.Go(func() {
			sess.ApplyMatches(snapshot)
		})
	}
	fanOut.Wait()

	s.logger.DebugContext(ctx, "today's matches refreshed", "matches", len(snapshot), "sessions", len(sessions))
	return append([]match.Match(nil), snapshot...), nil
}

// EvictIdle drops sessions unused for longer than the idle TTL.
func (s *LineupService) EvictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.cfg.SessionIdleTTL {
			delete(s.sessions, key)
			evicted++
		}
	}
	return evicted
}

func (s *LineupService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *LineupService) liveSessions() []*LineupSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*LineupSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}
