package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/score"
	scoremock "github.com/riskibarqy/fantasy-hockey/internal/mocks/domain/score"
	"github.com/stretchr/testify/mock"
)

func TestScoreService_Standings_Ranked(t *testing.T) {
	t.Parallel()

	repo := scoremock.NewRepository(t)
	repo.On("Standings", mock.Anything).Return([]score.Standing{
		{UserID: "u1", Username: "alice", TotalPoints: 4},
		{UserID: "u2", Username: "bob", TotalPoints: 9.5},
	}, nil).Once()

	items, err := NewScoreService(repo).Standings(context.Background())
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if items[0].Username != "bob" || items[0].Rank != 1 || items[1].Rank != 2 {
		t.Fatalf("unexpected ranking: %+v", items)
	}
}

func TestScoreService_ByDay_ValidatesDay(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(scoremock.NewRepository(t))
	if _, err := svc.ByDay(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScoreService_Mine_RequiresToken(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(scoremock.NewRepository(t))
	if _, err := svc.Mine(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestScoreService_Overview(t *testing.T) {
	t.Parallel()

	repo := scoremock.NewRepository(t)
	repo.On("Standings", mock.Anything).Return([]score.Standing{{UserID: "u1", TotalPoints: 3}}, nil).Once()
	repo.On("Mine", mock.Anything).Return([]score.DayScore{{Day: 1, TotalPoints: 3}}, nil).Once()

	out, err := NewScoreService(repo).Overview(WithBearerToken(context.Background(), "token-1"))
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(out.Standings) != 1 || out.Standings[0].Rank != 1 {
		t.Fatalf("unexpected standings: %+v", out.Standings)
	}
	if len(out.History) != 1 || out.History[0].Day != 1 {
		t.Fatalf("unexpected history: %+v", out.History)
	}
}

func TestScoreService_Overview_PropagatesFailure(t *testing.T) {
	t.Parallel()

	repo := scoremock.NewRepository(t)
	repo.On("Standings", mock.Anything).Return(nil, ErrDependencyUnavailable).Maybe()
	repo.On("Mine", mock.Anything).Return([]score.DayScore{}, nil).Maybe()

	_, err := NewScoreService(repo).Overview(WithBearerToken(context.Background(), "token-1"))
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
