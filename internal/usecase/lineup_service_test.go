package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	lineupmock "github.com/riskibarqy/fantasy-hockey/internal/mocks/domain/lineup"
	matchmock "github.com/riskibarqy/fantasy-hockey/internal/mocks/domain/match"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLineupService(t *testing.T, lineups *lineupmock.Repository, matches *matchmock.Repository) *LineupService {
	t.Helper()

	svc := NewLineupService(newTestCatalog(), lineups, matches, LineupServiceConfig{SessionIdleTTL: time.Hour}, nil)
	svc.now = func() time.Time { return sessionNow }
	return svc
}

func TestLineupService_Session_RequiresBearerToken(t *testing.T) {
	t.Parallel()

	svc := newTestLineupService(t, lineupmock.NewRepository(t), matchmock.NewRepository(t))
	if _, err := svc.View(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLineupService_Session_IsolatedPerToken(t *testing.T) {
	t.Parallel()

	lineups := lineupmock.NewRepository(t)
	lineups.On("Get", mock.Anything, 2).Return(lineup.EmptySnapshot(2), nil).Twice()
	matches := matchmock.NewRepository(t)
	matches.On("ListByDay", mock.Anything, 2).Return([]match.Match{}, nil).Twice()
	svc := newTestLineupService(t, lineups, matches)

	alice := WithBearerToken(context.Background(), "token-alice")
	bob := WithBearerToken(context.Background(), "token-bob")

	if _, err := svc.OpenDay(alice, 2); err != nil {
		t.Fatalf("open day alice: %v", err)
	}
	if _, err := svc.OpenDay(bob, 2); err != nil {
		t.Fatalf("open day bob: %v", err)
	}
	if _, err := svc.Pick(alice, lineup.SlotGoalkeeper, finGoalie.ID); err != nil {
		t.Fatalf("pick alice: %v", err)
	}

	aliceView, err := svc.View(alice)
	require.NoError(t, err)
	bobView, err := svc.View(bob)
	require.NoError(t, err)

	require.Equal(t, []int64{finGoalie.ID}, aliceView.SelectedIDs)
	require.Empty(t, bobView.SelectedIDs)
	require.Equal(t, 2, svc.SessionCount())
}

func TestLineupService_View_OpensFirstMatchDay(t *testing.T) {
	t.Parallel()

	lineups := lineupmock.NewRepository(t)
	lineups.On("Get", mock.Anything, 3).Return(lineup.Snapshot{
		Day:     3,
		Entries: []lineup.SnapshotEntry{{Player: sweDefender}},
	}, nil).Once()
	matches := matchmock.NewRepository(t)
	matches.On("ListToday", mock.Anything).Return([]match.Match{finLater, czeLive}, nil).Once()

	svc := newTestLineupService(t, lineups, matches)
	ctx := WithBearerToken(context.Background(), "token-1")

	view, err := svc.View(ctx)
	require.NoError(t, err)
	require.True(t, view.Active)
	require.Equal(t, 3, view.Day)
	require.Len(t, view.Matches, 2)

	// second read keeps the open day without refetching
	view, err = svc.View(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{sweDefender.ID}, view.SelectedIDs)
}

func TestLineupService_View_NoMatchesStaysInactive(t *testing.T) {
	t.Parallel()

	matches := matchmock.NewRepository(t)
	matches.On("ListToday", mock.Anything).Return(nil, errors.New("timeout")).Once()

	svc := newTestLineupService(t, lineupmock.NewRepository(t), matches)
	view, err := svc.View(WithBearerToken(context.Background(), "token-1"))
	require.NoError(t, err)
	require.False(t, view.Active)
}

func TestLineupService_RefreshMatches_UpdatesLocksOnly(t *testing.T) {
	t.Parallel()

	lineups := lineupmock.NewRepository(t)
	lineups.On("Get", mock.Anything, 3).Return(lineup.EmptySnapshot(3), nil).Once()
	matches := matchmock.NewRepository(t)
	matches.On("ListToday", mock.Anything).Return([]match.Match{finLater}, nil).Once()
	matches.On("ListToday", mock.Anything).Return([]match.Match{czeLive, finLater}, nil).Once()

	svc := newTestLineupService(t, lineups, matches)
	ctx := WithBearerToken(context.Background(), "token-1")

	if _, err := svc.RefreshMatches(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if _, err := svc.OpenDay(ctx, 3); err != nil {
		t.Fatalf("open day: %v", err)
	}
	view, err := svc.Pick(ctx, lineup.SlotForward1, czeForward.ID)
	require.NoError(t, err)
	require.False(t, view.Slots[0].Locked)

	if _, err := svc.RefreshMatches(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	view, err = svc.View(ctx)
	require.NoError(t, err)
	require.True(t, view.Slots[0].Locked)
	require.Equal(t, []int64{czeForward.ID}, view.SelectedIDs)
}

func TestLineupService_RefreshMatches_FailureKeepsSchedule(t *testing.T) {
	t.Parallel()

	matches := matchmock.NewRepository(t)
	matches.On("ListToday", mock.Anything).Return([]match.Match{finLater}, nil).Once()
	matches.On("ListToday", mock.Anything).Return(nil, errors.New("502")).Once()

	svc := newTestLineupService(t, lineupmock.NewRepository(t), matches)
	if _, err := svc.RefreshMatches(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if _, err := svc.RefreshMatches(context.Background()); err == nil {
		t.Fatalf("expected second refresh to fail")
	}
	require.Len(t, svc.TodayMatches(context.Background()), 1)
}

func TestLineupService_MatchesByDay(t *testing.T) {
	t.Parallel()

	matches := matchmock.NewRepository(t)
	matches.On("ListByDay", mock.Anything, 3).Return([]match.Match{czeLive}, nil).Once()
	matches.On("ListByDay", mock.Anything, 4).Return(nil, errors.New("boom")).Once()

	svc := newTestLineupService(t, lineupmock.NewRepository(t), matches)

	items, err := svc.MatchesByDay(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = svc.MatchesByDay(context.Background(), 4)
	require.NoError(t, err)
	require.Empty(t, items)

	if _, err := svc.MatchesByDay(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLineupService_EvictIdle(t *testing.T) {
	t.Parallel()

	svc := newTestLineupService(t, lineupmock.NewRepository(t), matchmock.NewRepository(t))
	if _, err := svc.Session(WithBearerToken(context.Background(), "token-1")); err != nil {
		t.Fatalf("session: %v", err)
	}

	if evicted := svc.EvictIdle(sessionNow.Add(30 * time.Minute)); evicted != 0 {
		t.Fatalf("expected no eviction, got %d", evicted)
	}
	if evicted := svc.EvictIdle(sessionNow.Add(2 * time.Hour)); evicted != 1 {
		t.Fatalf("expected one eviction, got %d", evicted)
	}
	if svc.SessionCount() != 0 {
		t.Fatalf("expected no sessions left")
	}
}

func TestMatchRefresher_TickRefreshesAndEvicts(t *testing.T) {
	t.Parallel()

	matches := matchmock.NewRepository(t)
	matches.On("ListToday", mock.Anything).Return([]match.Match{finLater}, nil).Once()

	svc := newTestLineupService(t, lineupmock.NewRepository(t), matches)
	if _, err := svc.Session(WithBearerToken(context.Background(), "token-1")); err != nil {
		t.Fatalf("session: %v", err)
	}

	refresher := NewMatchRefresher(svc, time.Minute, nil)
	refresher.now = func() time.Time { return sessionNow.Add(3 * time.Hour) }
	refresher.tick(context.Background())

	require.Len(t, svc.TodayMatches(context.Background()), 1)
	require.Equal(t, 0, svc.SessionCount())
}

func TestLineupService_Candidates_LoadsScheduleForLocks(t *testing.T) {
	t.Parallel()

	matches := matchmock.NewRepository(t)
	matches.On("ListToday", mock.Anything).Return([]match.Match{czeLive, finLater}, nil).Once()

	svc := newTestLineupService(t, lineupmock.NewRepository(t), matches)
	ctx := WithBearerToken(context.Background(), "token-1")

	items, err := svc.Candidates(ctx, CandidateQuery{Slot: lineup.SlotForward1})
	require.NoError(t, err)
	require.Len(t, items, 3)

	locked := map[int64]bool{}
	for _, item := range items {
		locked[item.Player.ID] = item.Locked
	}
	require.True(t, locked[czeForward.ID])
	require.False(t, locked[finForward.ID])

	// the schedule is fetched once
	_, err = svc.Candidates(ctx, CandidateQuery{Slot: lineup.SlotForward2})
	require.NoError(t, err)
}

func TestLineupService_View_DoesNotOverrideLoadingDay(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	fetching := make(chan struct{})

	lineups := lineupmock.NewRepository(t)
	lineups.On("Get", mock.Anything, 5).
		Run(func(mock.Arguments) {
			close(fetching)
			<-release
		}).
		Return(lineup.EmptySnapshot(5), nil).
		Once()
	matches := matchmock.NewRepository(t)
	matches.On("ListByDay", mock.Anything, 5).Return([]match.Match{}, nil).Once()
	matches.On("ListToday", mock.Anything).Return([]match.Match{czeLive}, nil).Once()

	svc := newTestLineupService(t, lineups, matches)
	ctx := WithBearerToken(context.Background(), "token-1")

	done := make(chan error, 1)
	go func() {
		_, err := svc.OpenDay(ctx, 5)
		done <- err
	}()
	<-fetching

	view, err := svc.View(ctx)
	require.NoError(t, err)
	require.True(t, view.Loading)

	close(release)
	require.NoError(t, <-done)

	view, err = svc.View(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, view.Day)
}
