package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

// SlotState is a slot of the read model with its lock flag.
type SlotState struct {
	lineup.SlotView
	Locked bool
}

// MatchState is a match of the read model with its lock timing.
type MatchState struct {
	match.Match
	Started bool
	LocksIn time.Duration
}

// SessionView is the read model served to the UI.
type SessionView struct {
	Day         int
	Active      bool
	Loading     bool
	Slots       []SlotState
	Captain     lineup.SlotKey
	SelectedIDs []int64
	Matches     []MatchState
}

// Candidate is a roster entry offered by the player picker.
type Candidate struct {
	Player   player.Player
	Selected bool
	Locked   bool
}

// CandidateQuery narrows the picker list for one slot.
type CandidateQuery struct {
	Slot   lineup.SlotKey
	Search string
	Team   string
}

// LineupSession is one user's editing session. Every operation is
// serialised by mu; backend calls run outside of it.
type LineupSession struct {
	mu sync.Mutex

	catalog  *RosterCatalog
	lineups  lineup.Repository
	schedule match.Repository
	logger   *logging.Logger
	now      func() time.Time

	state        *lineup.Lineup
	generation   uint64
	loading      bool
	today        []match.Match
	dayMatches   []match.Match
	serverLocked map[int64]struct{}
	lastUsed     time.Time
}

func NewLineupSession(
	catalog *RosterCatalog,
	lineups lineup.Repository,
	schedule match.Repository,
	logger *logging.Logger,
	now func() time.Time,
) *LineupSession {
	if logger == nil {
		logger = logging.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &LineupSession{
		catalog:      catalog,
		lineups:      lineups,
		schedule:     schedule,
		logger:       logger,
		now:          now,
		serverLocked: make(map[int64]struct{}),
		lastUsed:     now(),
	}
}

// OpenDay switches the session to day. The saved lineup is fetched and
// reconciled aside and only then replaces the current one; edits are
// refused until that happens. A load overtaken by another OpenDay is
// discarded.
func (s *LineupSession) OpenDay(ctx context.Context, day int) (SessionView, error) {
	return s.openDay(ctx, day, false)
}

// OpenDayIfInactive opens day unless a day is already open or loading.
func (s *LineupSession) OpenDayIfInactive(ctx context.Context, day int) (SessionView, error) {
	return s.openDay(ctx, day, true)
}

func (s *LineupSession) openDay(ctx context.Context, day int, onlyIfInactive bool) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupSession.OpenDay")
	defer span.End()

	if day <= 0 {
		return SessionView{}, fmt.Errorf("%w: day must be greater than zero", ErrInvalidInput)
	}

	s.mu.Lock()
	s.touch()
	if onlyIfInactive && (s.state != nil || s.loading) {
		view := s.viewLocked()
		s.mu.Unlock()
		return view, nil
	}
	s.generation++
	generation := s.generation
	s.loading = true
	needSchedule := len(matchesOnDay(s.today, day)) == 0
	s.mu.Unlock()

	snapshot, dayMatches := s.loadDay(ctx, day, needSchedule)

	next := lineup.New(day)
	serverLocked := make(map[int64]struct{})
	report, reconcileErr := next.Reconcile(snapshot)
	switch {
	case errors.Is(reconcileErr, lineup.ErrStaleSnapshot):
		s.logger.WarnContext(ctx, "discarding lineup snapshot for another day", "day", day, "snapshot_day", snapshot.Day)
		reconcileErr = nil
	case reconcileErr != nil:
		next = lineup.New(day)
	default:
		for _, id := range report.ServerLocked {
			serverLocked[id] = struct{}{}
		}
		if len(report.Dropped) > 0 {
			s.logger.WarnContext(ctx, "dropped lineup entries during reconcile",
				"day", day,
				"placed", report.Placed,
				"dropped", len(report.Dropped),
			)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		s.logger.InfoContext(ctx, "discarding stale lineup snapshot", "day", day, "generation", generation)
		return s.viewLocked(), nil
	}
	s.state = next
	s.serverLocked = serverLocked
	s.dayMatches = dayMatches
	s.loading = false

	if reconcileErr != nil {
		return SessionView{}, fmt.Errorf("reconcile lineup: %w", reconcileErr)
	}
	return s.viewLocked(), nil
}

// loadDay fetches the saved lineup of day and, when asked, its schedule.
// Failures degrade to an empty lineup and an empty schedule.
func (s *LineupSession) loadDay(ctx context.Context, day int, withSchedule bool) (lineup.Snapshot, []match.Match) {
	var (
		wg         conc.WaitGroup
		snapshot   lineup.Snapshot
		dayMatches []match.Match
	)
	wg.Go(func() {
		var err error
		snapshot, err = s.lineups.Get(ctx, day)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch saved lineup failed, starting empty", "day", day, "error", err)
			snapshot = lineup.EmptySnapshot(day)
		}
	})
	if withSchedule && s.schedule != nil {
		wg.Go(func() {
			items, err := s.schedule.ListByDay(ctx, day)
			if err != nil {
				s.logger.WarnContext(ctx, "fetch day schedule failed, locks follow server flags only", "day", day, "error", err)
				return
			}
			dayMatches = matchesOnDay(items, day)
		})
	}
	wg.Wait()

	return snapshot, dayMatches
}

// ApplyMatches replaces today's schedule. Only lock-derived state changes.
func (s *LineupSession) ApplyMatches(matches []match.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.today = append([]match.Match(nil), matches...)
}

// Pick places playerID into slot.
func (s *LineupSession) Pick(ctx context.Context, slot lineup.SlotKey, playerID int64) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupSession.Pick")
	defer span.End()

	if !slot.Valid() {
		return SessionView{}, fmt.Errorf("%w: %q", lineup.ErrUnknownSlot, slot)
	}
	item, err := s.catalog.Lookup(ctx, playerID)
	if err != nil {
		return SessionView{}, fmt.Errorf("lookup player: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireDayLocked(); err != nil {
		return SessionView{}, err
	}
	now := s.now()
	if occupant, ok := s.state.PlayerAt(slot); ok {
		if occupant.ID == item.ID {
			return s.viewLocked(), nil
		}
		if s.isLockedLocked(occupant, now) {
			return SessionView{}, fmt.Errorf("%w: slot=%s holds %s", lineup.ErrSlotLocked, slot, occupant.Name)
		}
	}
	if s.isLockedLocked(item, now) {
		return SessionView{}, fmt.Errorf("%w: %s's match has already started", lineup.ErrSlotLocked, item.Name)
	}
	if err := s.state.Pick(slot, item); err != nil {
		return SessionView{}, err
	}
	s.touch()

	return s.viewLocked(), nil
}

// Remove clears slot unless its occupant is locked.
func (s *LineupSession) Remove(ctx context.Context, slot lineup.SlotKey) (SessionView, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LineupSession.Remove")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireDayLocked(); err != nil {
		return SessionView{}, err
	}
	if occupant, ok := s.state.PlayerAt(slot); ok && s.isLockedLocked(occupant, s.now()) {
		return SessionView{}, fmt.Errorf("%w: slot=%s", lineup.ErrSlotLocked, slot)
	}
	if err := s.state.Remove(slot); err != nil {
		return SessionView{}, err
	}
	s.touch()

	return s.viewLocked(), nil
}

// ToggleCaptain toggles the captaincy on slot. Locked players neither gain
// nor lose the captaincy.
func (s *LineupSession) ToggleCaptain(ctx context.Context, slot lineup.SlotKey) (SessionView, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LineupSession.ToggleCaptain")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireDayLocked(); err != nil {
		return SessionView{}, err
	}
	now := s.now()
	occupant, occupied := s.state.PlayerAt(slot)
	if occupied && s.isLockedLocked(occupant, now) {
		return SessionView{}, fmt.Errorf("%w: slot=%s", lineup.ErrSlotLocked, slot)
	}
	if current, ok := s.state.Captain(); ok && current != slot && occupied {
		if captain, held := s.state.PlayerAt(current); held && s.isLockedLocked(captain, now) {
			return SessionView{}, fmt.Errorf("%w: captain %s is locked", lineup.ErrSlotLocked, captain.Name)
		}
	}
	if err := s.state.ToggleCaptain(slot); err != nil {
		return SessionView{}, err
	}
	s.touch()

	return s.viewLocked(), nil
}

// Save submits the lineup of the active day. On failure the local lineup
// is left untouched and the backend message is returned as is.
func (s *LineupSession) Save(ctx context.Context) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupSession.Save")
	defer span.End()

	s.mu.Lock()
	if err := s.requireDayLocked(); err != nil {
		s.mu.Unlock()
		return SessionView{}, err
	}
	day := s.state.Day()
	generation := s.generation
	payload, err := s.state.BuildSavePayload()
	s.touch()
	s.mu.Unlock()
	if err != nil {
		return SessionView{}, err
	}

	saved, err := s.lineups.Save(ctx, day, payload)
	if err != nil {
		s.logger.WarnContext(ctx, "save lineup failed", "day", day, "players", len(payload), "error", err)
		return SessionView{}, fmt.Errorf("save lineup day=%d: %w", day, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == generation && saved.Day == day {
		for _, entry := range saved.Entries {
			if entry.Locked {
				s.serverLocked[entry.Player.ID] = struct{}{}
			}
		}
	}
	s.logger.InfoContext(ctx, "lineup saved", "day", day, "players", len(payload))

	return s.viewLocked(), nil
}

// View returns the current read model.
func (s *LineupSession) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	return s.viewLocked()
}

// ActiveDay returns the open day, if any.
func (s *LineupSession) ActiveDay() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return 0, false
	}
	return s.state.Day(), true
}

// Candidates lists the roster eligible for slot with selection and lock
// flags. Selected players are flagged, not hidden.
func (s *LineupSession) Candidates(ctx context.Context, query CandidateQuery) ([]Candidate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupSession.Candidates")
	defer span.End()

	if !query.Slot.Valid() {
		return nil, fmt.Errorf("%w: %q", lineup.ErrUnknownSlot, query.Slot)
	}

	roster := s.catalog.List(ctx, player.Filter{
		Position: lineup.PositionOf(query.Slot),
		TeamAbbr: strings.TrimSpace(query.Team),
	})
	search := strings.ToLower(strings.TrimSpace(query.Search))

	s.mu.Lock()
	defer s.mu.Unlock()

	var selected map[int64]struct{}
	if s.state != nil {
		selected = s.state.SelectedPlayerIDs()
	}
	locks := match.ComputeLockSet(roster, s.scheduleLocked(), s.now())

	out := make([]Candidate, 0, len(roster))
	for _, item := range roster {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		_, isSelected := selected[item.ID]
		_, serverLocked := s.serverLocked[item.ID]
		out = append(out, Candidate{
			Player:   item,
			Selected: isSelected,
			Locked:   serverLocked || locks.Has(item.ID),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Player.Name < out[j].Player.Name
	})

	return out, nil
}

func (s *LineupSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastUsed
}

func (s *LineupSession) touch() {
	s.lastUsed = s.now()
}

func (s *LineupSession) requireDayLocked() error {
	if s.loading {
		return ErrDayLoading
	}
	if s.state == nil {
		return ErrNoActiveDay
	}
	return nil
}

func (s *LineupSession) isLockedLocked(p player.Player, now time.Time) bool {
	if _, ok := s.serverLocked[p.ID]; ok {
		return true
	}
	return match.IsLocked(p, s.scheduleLocked(), now)
}

// scheduleLocked returns the matches locks are derived from: those of the
// open day, or all of today's when no day is open. Today's schedule wins
// over the one loaded with the day since the refresher keeps it current.
func (s *LineupSession) scheduleLocked() []match.Match {
	if s.state == nil {
		return s.today
	}
	if items := matchesOnDay(s.today, s.state.Day()); len(items) > 0 {
		return items
	}
	return s.dayMatches
}

func matchesOnDay(items []match.Match, day int) []match.Match {
	var out []match.Match
	for _, m := range items {
		if m.Day == day {
			out = append(out, m)
		}
	}
	return out
}

func (s *LineupSession) viewLocked() SessionView {
	now := s.now()
	schedule := s.scheduleLocked()
	out := SessionView{
		Loading: s.loading,
		Matches: make([]MatchState, 0, len(schedule)),
	}
	for _, m := range schedule {
		out.Matches = append(out.Matches, MatchState{
			Match:   m,
			Started: match.HasStarted(m, now),
			LocksIn: match.LocksIn(m, now),
		})
	}
	if s.state == nil {
		return out
	}

	view := s.state.View()
	out.Day = view.Day
	out.Active = true
	out.Captain = view.Captain
	out.SelectedIDs = view.SelectedIDs
	out.Slots = make([]SlotState, 0, len(view.Slots))
	for _, slot := range view.Slots {
		locked := slot.Player != nil && s.isLockedLocked(*slot.Player, now)
		out.Slots = append(out.Slots, SlotState{SlotView: slot, Locked: locked})
	}
	return out
}
