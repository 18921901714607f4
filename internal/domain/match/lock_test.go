package match

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
)

func TestHasStarted(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 16, 16, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		match Match
		want  bool
	}{
		{name: "upcoming in future", match: Match{Status: StatusUpcoming, MatchTime: now.Add(time.Hour)}, want: false},
		{name: "upcoming at kickoff", match: Match{Status: StatusUpcoming, MatchTime: now}, want: true},
		{name: "upcoming past kickoff", match: Match{Status: StatusUpcoming, MatchTime: now.Add(-time.Minute)}, want: true},
		{name: "live before scheduled time", match: Match{Status: StatusLive, MatchTime: now.Add(time.Hour)}, want: true},
		{name: "completed", match: Match{Status: StatusCompleted, MatchTime: now.Add(-3 * time.Hour)}, want: true},
		{name: "empty status means upcoming", match: Match{Status: "", MatchTime: now.Add(time.Hour)}, want: false},
		{name: "no kickoff time", match: Match{Status: StatusUpcoming}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasStarted(tc.match, now); got != tc.want {
				t.Fatalf("HasStarted=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestIsLocked_ByTeamMatch(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 16, 16, 0, 0, 0, time.UTC)
	matches := []Match{
		{ID: 1, HomeTeam: "CZE", AwayTeam: "SVK", Status: StatusLive, MatchTime: now.Add(-30 * time.Minute)},
		{ID: 2, HomeTeam: "FIN", AwayTeam: "SWE", Status: StatusUpcoming, MatchTime: now.Add(4 * time.Hour)},
	}

	if !IsLocked(player.Player{ID: 1, TeamAbbr: "svk"}, matches, now) {
		t.Fatalf("expected away team player of live match to be locked")
	}
	if IsLocked(player.Player{ID: 2, TeamAbbr: "SWE"}, matches, now) {
		t.Fatalf("expected player of upcoming match to be editable")
	}
	if IsLocked(player.Player{ID: 3, TeamAbbr: "CAN"}, matches, now) {
		t.Fatalf("expected player without match to be editable")
	}

	// time advances independently of lineup edits
	later := now.Add(5 * time.Hour)
	if !IsLocked(player.Player{ID: 2, TeamAbbr: "SWE"}, matches, later) {
		t.Fatalf("expected player to lock once kickoff passes")
	}
}

func TestComputeLockSet(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 16, 16, 0, 0, 0, time.UTC)
	matches := []Match{{HomeTeam: "CZE", AwayTeam: "SVK", Status: StatusCompleted}}
	players := []player.Player{
		{ID: 10, TeamAbbr: "CZE"},
		{ID: 11, TeamAbbr: "USA"},
	}

	locks := ComputeLockSet(players, matches, now)
	if !locks.Has(10) {
		t.Fatalf("expected player 10 locked")
	}
	if locks.Has(11) {
		t.Fatalf("expected player 11 unlocked")
	}
}

func TestLocksIn(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 16, 16, 0, 0, 0, time.UTC)
	if got := LocksIn(Match{Status: StatusUpcoming, MatchTime: now.Add(90 * time.Minute)}, now); got != 90*time.Minute {
		t.Fatalf("unexpected locks-in duration: %s", got)
	}
	if got := LocksIn(Match{Status: StatusLive, MatchTime: now.Add(time.Hour)}, now); got != 0 {
		t.Fatalf("expected zero for started match, got %s", got)
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	if got := NormalizeStatus(" LIVE "); got != StatusLive {
		t.Fatalf("unexpected status: %s", got)
	}
	if got := NormalizeStatus("Final"); got != StatusCompleted {
		t.Fatalf("unexpected status: %s", got)
	}
	if got := NormalizeStatus(""); got != StatusUpcoming {
		t.Fatalf("unexpected status: %s", got)
	}
}
