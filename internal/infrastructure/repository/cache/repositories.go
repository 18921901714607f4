package cache

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-hockey/internal/platform/cache"
)

// PlayerRepository caches roster listings per filter.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store[[]player.Player]) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	key := "players:" + string(filter.Position) + ":" + strings.ToUpper(strings.TrimSpace(filter.TeamAbbr))
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

// MatchRepository caches per-day schedules. Today's matches always go to
// the backend so status changes are seen on every refresh.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store[[]match.Match]
}

func NewMatchRepository(next match.Repository, cache *basecache.Store[[]match.Match]) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) ListToday(ctx context.Context) ([]match.Match, error) {
	items, err := r.next.ListToday(ctx)
	if err != nil {
		return nil, err
	}

	for _, m := range items {
		r.cache.Delete(dayKey(m.Day))
	}
	return items, nil
}

func (r *MatchRepository) ListByDay(ctx context.Context, day int) ([]match.Match, error) {
	items, err := r.cache.GetOrLoad(ctx, dayKey(day), func(ctx context.Context) ([]match.Match, error) {
		return r.next.ListByDay(ctx, day)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func dayKey(day int) string {
	return "matches:day:" + strconv.Itoa(day)
}
