package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
	matchmock "github.com/riskibarqy/fantasy-hockey/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/fantasy-hockey/internal/mocks/domain/player"
	basecache "github.com/riskibarqy/fantasy-hockey/internal/platform/cache"
)

func TestPlayerRepository_CachesPerFilter(t *testing.T) {
	t.Parallel()

	forwards := player.Filter{Position: player.PositionForward}
	goalies := player.Filter{Position: player.PositionGoalkeeper}

	next := playermock.NewRepository(t)
	next.On("List", context.Background(), forwards).
		Return([]player.Player{{ID: 1, Name: "David Pastrnak", Position: player.PositionForward, TeamAbbr: "CZE"}}, nil).
		Once()
	next.On("List", context.Background(), goalies).
		Return([]player.Player{{ID: 9, Name: "Juuse Saros", Position: player.PositionGoalkeeper, TeamAbbr: "FIN"}}, nil).
		Once()

	repo := NewPlayerRepository(next, basecache.NewStore[[]player.Player](time.Minute))
	for range 3 {
		items, err := repo.List(context.Background(), forwards)
		if err != nil || len(items) != 1 || items[0].ID != 1 {
			t.Fatalf("unexpected forwards: %+v %v", items, err)
		}
	}
	items, err := repo.List(context.Background(), goalies)
	if err != nil || len(items) != 1 || items[0].ID != 9 {
		t.Fatalf("unexpected goalies: %+v %v", items, err)
	}
}

func TestPlayerRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	next := playermock.NewRepository(t)
	next.On("List", context.Background(), player.Filter{}).
		Return([]player.Player{{ID: 1, Name: "Roman Josi"}}, nil).
		Once()

	repo := NewPlayerRepository(next, basecache.NewStore[[]player.Player](time.Minute))
	first, _ := repo.List(context.Background(), player.Filter{})
	first[0].Name = "mutated"

	second, _ := repo.List(context.Background(), player.Filter{})
	if second[0].Name != "Roman Josi" {
		t.Fatalf("cached slice was mutated: %+v", second)
	}
}

func TestMatchRepository_TodayBypassesAndInvalidatesDay(t *testing.T) {
	t.Parallel()

	upcoming := []match.Match{{ID: 1, Day: 2, HomeTeam: "CZE", AwayTeam: "SVK", Status: match.StatusUpcoming}}
	live := []match.Match{{ID: 1, Day: 2, HomeTeam: "CZE", AwayTeam: "SVK", Status: match.StatusLive}}

	next := matchmock.NewRepository(t)
	next.On("ListByDay", context.Background(), 2).Return(upcoming, nil).Once()
	next.On("ListToday", context.Background()).Return(live, nil).Twice()
	next.On("ListByDay", context.Background(), 2).Return(live, nil).Once()

	repo := NewMatchRepository(next, basecache.NewStore[[]match.Match](time.Minute))
	if items, _ := repo.ListByDay(context.Background(), 2); items[0].Status != match.StatusUpcoming {
		t.Fatalf("unexpected first load: %+v", items)
	}
	if items, _ := repo.ListByDay(context.Background(), 2); items[0].Status != match.StatusUpcoming {
		t.Fatalf("expected cached day: %+v", items)
	}

	for range 2 {
		if _, err := repo.ListToday(context.Background()); err != nil {
			t.Fatalf("list today: %v", err)
		}
	}
	if items, _ := repo.ListByDay(context.Background(), 2); items[0].Status != match.StatusLive {
		t.Fatalf("expected day reload after today's refresh: %+v", items)
	}
}

func TestMatchRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend down")
	next := matchmock.NewRepository(t)
	next.On("ListByDay", context.Background(), 1).Return(nil, boom).Once()
	next.On("ListByDay", context.Background(), 1).Return([]match.Match{{ID: 3, Day: 1}}, nil).Once()

	repo := NewMatchRepository(next, basecache.NewStore[[]match.Match](time.Minute))
	if _, err := repo.ListByDay(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
	items, err := repo.ListByDay(context.Background(), 1)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected reload: %+v %v", items, err)
	}
}
