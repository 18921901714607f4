package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
)

const defaultRosterPrefetchWorkers = 3

// RosterCatalog is a read-only view over the backend roster.
type RosterCatalog struct {
	repo    player.Repository
	workers int
	logger  *logging.Logger
}

func NewRosterCatalog(repo player.Repository, workers int, logger *logging.Logger) *RosterCatalog {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultRosterPrefetchWorkers
	}
	return &RosterCatalog{
		repo:    repo,
		workers: workers,
		logger:  logger,
	}
}

// List returns the roster matching filter. A failed fetch yields an empty
// catalog.
func (c *RosterCatalog) List(ctx context.Context, filter player.Filter) []player.Player {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterCatalog.List")
	defer span.End()

	items, err := c.repo.List(ctx, filter)
	if err != nil {
		c.logger.WarnContext(ctx, "roster fetch failed, using empty catalog",
			"position", filter.Position,
			"team", filter.TeamAbbr,
			"error", err,
		)
		return nil
	}
	return items
}

// Lookup resolves one player by id.
func (c *RosterCatalog) Lookup(ctx context.Context, playerID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterCatalog.Lookup")
	defer span.End()

	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	roster, err := c.Prefetch(ctx)
	if err != nil {
		return player.Player{}, err
	}
	item, ok := roster[playerID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return item, nil
}

// Prefetch loads every position concurrently and indexes the result by id.
// It only fails when no position could be loaded.
func (c *RosterCatalog) Prefetch(ctx context.Context) (map[int64]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterCatalog.Prefetch")
	defer span.End()

	type positionResult struct {
		position player.Position
		items    []player.Player
		err      error
	}

	pool, err := ants.NewPool(min(c.workers, len(player.Positions)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan positionResult, len(player.Positions))
	var workers sync.WaitGroup
	for _, position := range player.Positions {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			items, err := c.repo.List(ctx, player.Filter{Position: position})
			results <- positionResult{position: position, items: items, err: err}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit roster task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make(map[int64]player.Player, 64)
	failed := 0
	var lastErr error
	for row := range results {
		if row.err != nil {
			failed++
			lastErr = row.err
			c.logger.WarnContext(ctx, "roster prefetch failed", "position", row.position, "error", row.err)
			continue
		}
		for _, item := range row.items {
			out[item.ID] = item
		}
	}
	if failed == len(player.Positions) {
		return nil, fmt.Errorf("%w: roster unavailable: %v", ErrDependencyUnavailable, lastErr)
	}
	return out, nil
}
