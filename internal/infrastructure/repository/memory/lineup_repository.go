package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
	"github.com/riskibarqy/fantasy-hockey/internal/usecase"
)

type savedEntry struct {
	PlayerID  int64
	IsCaptain bool
}

// LineupRepository stores saved lineups per caller and day and applies the
// same acceptance rules as the fantasy backend.
type LineupRepository struct {
	mu      sync.RWMutex
	players *PlayerRepository
	matches *MatchRepository
	saved   map[string][]savedEntry
	owners  map[string]map[int]struct{}
}

func NewLineupRepository(players *PlayerRepository, matches *MatchRepository) *LineupRepository {
	return &LineupRepository{
		players: players,
		matches: matches,
		saved:   make(map[string][]savedEntry),
		owners:  make(map[string]map[int]struct{}),
	}
}

func (r *LineupRepository) Get(ctx context.Context, day int) (lineup.Snapshot, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return lineup.Snapshot{}, err
	}

	return r.snapshot(day, r.entries(caller, day)), nil
}

// Save validates the payload and replaces the caller's lineup for day.
// Entries whose match already started survive with their captain flag.
func (r *LineupRepository) Save(ctx context.Context, day int, players []lineup.SavePlayer) (lineup.Snapshot, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return lineup.Snapshot{}, err
	}
	if len(players) == 0 {
		return lineup.Snapshot{}, fmt.Errorf("%w: No players submitted", usecase.ErrSaveRejected)
	}

	captains := 0
	for _, item := range players {
		if item.IsCaptain {
			captains++
		}
	}
	if captains != 1 {
		return lineup.Snapshot{}, fmt.Errorf("%w: Exactly one captain must be selected", usecase.ErrSaveRejected)
	}

	resolved := make([]player.Player, 0, len(players))
	counts := make(map[player.Position]int, len(player.Positions))
	for _, item := range players {
		p, ok := r.players.GetByID(ctx, item.PlayerID)
		if !ok {
			return lineup.Snapshot{}, fmt.Errorf("%w: player %d", usecase.ErrNotFound, item.PlayerID)
		}
		resolved = append(resolved, p)
		counts[p.Position]++
	}
	for _, pos := range player.Positions {
		if limit := lineup.Capacity(pos); counts[pos] > limit {
			return lineup.Snapshot{}, fmt.Errorf("%w: Too many %ss: max %d, got %d", usecase.ErrSaveRejected, pos, limit, counts[pos])
		}
	}

	key := lineupKey(caller, day)

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[int64]savedEntry, len(r.saved[key]))
	for _, entry := range r.saved[key] {
		existing[entry.PlayerID] = entry
	}
	for _, p := range resolved {
		if _, kept := existing[p.ID]; kept {
			continue
		}
		if r.matches.startedOnDay(p.TeamAbbr, day) {
			return lineup.Snapshot{}, fmt.Errorf("%w: Player %s's match has already started and cannot be added", usecase.ErrSaveRejected, p.Name)
		}
	}

	next := make([]savedEntry, 0, len(players))
	inPayload := make(map[int64]struct{}, len(players))
	for i, item := range players {
		inPayload[item.PlayerID] = struct{}{}
		entry := savedEntry{PlayerID: item.PlayerID, IsCaptain: item.IsCaptain}
		if prev, ok := existing[item.PlayerID]; ok && r.matches.startedOnDay(resolved[i].TeamAbbr, day) {
			entry.IsCaptain = prev.IsCaptain
		}
		next = append(next, entry)
	}
	for _, prev := range r.saved[key] {
		if _, ok := inPayload[prev.PlayerID]; ok {
			continue
		}
		p, ok := r.players.GetByID(ctx, prev.PlayerID)
		if ok && r.matches.startedOnDay(p.TeamAbbr, day) {
			next = append(next, prev)
		}
	}

	r.saved[key] = next
	if r.owners[caller] == nil {
		r.owners[caller] = make(map[int]struct{})
	}
	r.owners[caller][day] = struct{}{}

	return r.snapshot(day, cloneEntries(next)), nil
}

func (r *LineupRepository) entries(caller string, day int) []savedEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneEntries(r.saved[lineupKey(caller, day)])
}

// savedDays returns the days caller has a lineup for.
func (r *LineupRepository) savedDays(caller string) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int, 0, len(r.owners[caller]))
	for day := range r.owners[caller] {
		out = append(out, day)
	}
	return out
}

func (r *LineupRepository) callers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.owners))
	for caller := range r.owners {
		out = append(out, caller)
	}
	return out
}

func (r *LineupRepository) snapshot(day int, entries []savedEntry) lineup.Snapshot {
	out := lineup.Snapshot{Day: day, Entries: make([]lineup.SnapshotEntry, 0, len(entries))}
	for _, entry := range entries {
		p, ok := r.players.GetByID(context.Background(), entry.PlayerID)
		if !ok {
			continue
		}
		out.Entries = append(out.Entries, lineup.SnapshotEntry{
			Player:    p,
			IsCaptain: entry.IsCaptain,
			Locked:    r.matches.startedOnDay(p.TeamAbbr, day),
		})
	}
	return out
}

func callerFrom(ctx context.Context) (string, error) {
	token, ok := usecase.BearerTokenFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: missing bearer token", usecase.ErrUnauthorized)
	}
	return usecase.CallerKey(token), nil
}

func lineupKey(caller string, day int) string {
	return fmt.Sprintf("%s::%d", caller, day)
}

func cloneEntries(items []savedEntry) []savedEntry {
	if items == nil {
		return nil
	}
	return append([]savedEntry(nil), items...)
}
