package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/score"
	"golang.org/x/sync/errgroup"
)

// ScoreOverview bundles the overall table with the caller's history.
type ScoreOverview struct {
	Standings []score.Standing
	History   []score.DayScore
}

type ScoreService struct {
	repo score.Repository
}

func NewScoreService(repo score.Repository) *ScoreService {
	return &ScoreService{repo: repo}
}

func (s *ScoreService) Standings(ctx context.Context) ([]score.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Standings")
	defer span.End()

	items, err := s.repo.Standings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	return score.Rank(items), nil
}

func (s *ScoreService) ByDay(ctx context.Context, day int) ([]score.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.ByDay")
	defer span.End()

	if day <= 0 {
		return nil, fmt.Errorf("%w: day must be greater than zero", ErrInvalidInput)
	}
	items, err := s.repo.ByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list scores day=%d: %w", day, err)
	}
	return score.Rank(items), nil
}

func (s *ScoreService) Mine(ctx context.Context) ([]score.DayScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Mine")
	defer span.End()

	if _, ok := BearerTokenFromContext(ctx); !ok {
		return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}
	items, err := s.repo.Mine(ctx)
	if err != nil {
		return nil, fmt.Errorf("list my scores: %w", err)
	}
	return items, nil
}

// Overview fetches standings and the caller's history concurrently.
func (s *ScoreService) Overview(ctx context.Context) (ScoreOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Overview")
	defer span.End()

	var out ScoreOverview
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		items, err := s.Standings(groupCtx)
		if err != nil {
			return err
		}
		out.Standings = items
		return nil
	})
	group.Go(func() error {
		items, err := s.Mine(groupCtx)
		if err != nil {
			return err
		}
		out.History = items
		return nil
	})
	if err := group.Wait(); err != nil {
		return ScoreOverview{}, err
	}
	return out, nil
}
