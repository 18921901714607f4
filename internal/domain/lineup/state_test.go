package lineup

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
)

var (
	fwd1   = player.Player{ID: 101, Name: "David Pastrnak", Position: player.PositionForward, TeamAbbr: "CZE", ChampionshipYear: 2026}
	fwd2   = player.Player{ID: 102, Name: "Roman Cervenka", Position: player.PositionForward, TeamAbbr: "CZE", ChampionshipYear: 2026}
	fwd3   = player.Player{ID: 103, Name: "Mikael Granlund", Position: player.PositionForward, TeamAbbr: "FIN", ChampionshipYear: 2026}
	fwd4   = player.Player{ID: 104, Name: "Nico Hischier", Position: player.PositionForward, TeamAbbr: "SUI", ChampionshipYear: 2026}
	def1   = player.Player{ID: 201, Name: "Roman Josi", Position: player.PositionDefender, TeamAbbr: "SUI", ChampionshipYear: 2026}
	def2   = player.Player{ID: 202, Name: "Rasmus Dahlin", Position: player.PositionDefender, TeamAbbr: "SWE", ChampionshipYear: 2026}
	goalie = player.Player{ID: 301, Name: "Juuse Saros", Position: player.PositionGoalkeeper, TeamAbbr: "FIN", ChampionshipYear: 2026}
)

func TestPick_AssignsPlayerAndSelectsID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key SlotKey
		p   player.Player
	}{
		{key: SlotForward1, p: fwd1},
		{key: SlotForward3, p: fwd2},
		{key: SlotDefender2, p: def1},
		{key: SlotGoalkeeper, p: goalie},
	}

	for _, tc := range cases {
		l := New(1)
		if err := l.Pick(tc.key, tc.p); err != nil {
			t.Fatalf("pick %s: %v", tc.key, err)
		}
		got, ok := l.PlayerAt(tc.key)
		if !ok || got.ID != tc.p.ID {
			t.Fatalf("slot %s: got=%+v want id=%d", tc.key, got, tc.p.ID)
		}
		if _, ok := l.SelectedPlayerIDs()[tc.p.ID]; !ok {
			t.Fatalf("expected selected ids to contain %d", tc.p.ID)
		}
	}
}

func TestPick_PositionMismatchLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	l := New(1)
	if err := l.Pick(SlotForward1, fwd1); err != nil {
		t.Fatalf("seed pick: %v", err)
	}
	if err := l.ToggleCaptain(SlotForward1); err != nil {
		t.Fatalf("seed captain: %v", err)
	}
	before := l.View()

	for _, key := range []SlotKey{SlotForward1, SlotForward2, SlotDefender1, SlotGoalkeeper} {
		err := l.Pick(key, def2)
		if key == SlotDefender1 {
			if err != nil {
				t.Fatalf("expected defender pick into d1 to pass: %v", err)
			}
			_ = l.Remove(SlotDefender1)
			continue
		}
		if !errors.Is(err, ErrPositionMismatch) {
			t.Fatalf("slot %s: expected ErrPositionMismatch, got %v", key, err)
		}
	}

	if after := l.View(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed after rejected picks:\nbefore=%+v\nafter=%+v", before, after)
	}
}

func TestPick_AlreadySelectedInAnotherSlot(t *testing.T) {
	t.Parallel()

	l := New(1)
	if err := l.Pick(SlotForward1, fwd1); err != nil {
		t.Fatalf("pick f1: %v", err)
	}

	err := l.Pick(SlotForward2, fwd1)
	if !errors.Is(err, ErrAlreadySelected) {
		t.Fatalf("expected ErrAlreadySelected, got %v", err)
	}
	if _, ok := l.PlayerAt(SlotForward2); ok {
		t.Fatalf("expected f2 to stay empty")
	}

	// same player back into the same slot is fine
	if err := l.Pick(SlotForward1, fwd1); err != nil {
		t.Fatalf("re-pick same slot: %v", err)
	}
}

func TestPick_UnknownSlot(t *testing.T) {
	t.Parallel()

	l := New(1)
	if err := l.Pick("f4", fwd1); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}

func TestPick_ReplacingCaptainOccupantKeepsCaptainSlot(t *testing.T) {
	t.Parallel()

	l := New(1)
	mustPick(t, l, SlotForward1, fwd1)
	mustToggle(t, l, SlotForward1)
	mustPick(t, l, SlotForward1, fwd2)

	captain, ok := l.Captain()
	if !ok || captain != SlotForward1 {
		t.Fatalf("expected captain to remain on f1, got %q", captain)
	}
}

func TestRemove_CaptainSlotClearsCaptain(t *testing.T) {
	t.Parallel()

	l := New(1)
	mustPick(t, l, SlotForward1, fwd1)
	mustToggle(t, l, SlotForward1)

	if err := l.Remove(SlotForward1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := l.PlayerAt(SlotForward1); ok {
		t.Fatalf("expected f1 to be empty")
	}
	if _, ok := l.Captain(); ok {
		t.Fatalf("expected captain to be cleared")
	}

	// idempotent
	if err := l.Remove(SlotForward1); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestRemove_NonCaptainSlotKeepsCaptain(t *testing.T) {
	t.Parallel()

	l := New(1)
	mustPick(t, l, SlotForward1, fwd1)
	mustPick(t, l, SlotGoalkeeper, goalie)
	mustToggle(t, l, SlotGoalkeeper)

	if err := l.Remove(SlotForward1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if captain, _ := l.Captain(); captain != SlotGoalkeeper {
		t.Fatalf("expected captain on gk, got %q", captain)
	}
}

func TestToggleCaptain_DoubleApplicationRestoresState(t *testing.T) {
	t.Parallel()

	l := New(1)
	mustPick(t, l, SlotForward1, fwd1)
	mustPick(t, l, SlotDefender1, def1)

	// no captain initially
	mustToggle(t, l, SlotDefender1)
	mustToggle(t, l, SlotDefender1)
	if _, ok := l.Captain(); ok {
		t.Fatalf("expected no captain after double toggle")
	}

	// captain on another slot
	mustToggle(t, l, SlotForward1)
	mustToggle(t, l, SlotForward1)
	mustToggle(t, l, SlotForward1)
	if captain, _ := l.Captain(); captain != SlotForward1 {
		t.Fatalf("expected captain on f1, got %q", captain)
	}
}

func TestToggleCaptain_EmptySlotIsNoop(t *testing.T) {
	t.Parallel()

	l := New(1)
	mustPick(t, l, SlotForward1, fwd1)
	mustToggle(t, l, SlotForward1)

	if err := l.ToggleCaptain(SlotGoalkeeper); err != nil {
		t.Fatalf("toggle empty slot: %v", err)
	}
	if captain, _ := l.Captain(); captain != SlotForward1 {
		t.Fatalf("expected captain to stay on f1, got %q", captain)
	}
}

func TestToggleCaptain_MovesCaptainBetweenForwards(t *testing.T) {
	t.Parallel()

	l := New(1)
	mustPick(t, l, SlotForward1, fwd1)
	mustPick(t, l, SlotForward2, fwd2)
	mustToggle(t, l, SlotForward1)
	mustToggle(t, l, SlotForward2)

	view := l.View()
	for _, slot := range view.Slots {
		switch slot.Key {
		case SlotForward2:
			if !slot.IsCaptain {
				t.Fatalf("expected f2 to be captain")
			}
		default:
			if slot.IsCaptain {
				t.Fatalf("expected %s not to be captain", slot.Key)
			}
		}
	}
}

func TestCaptain_AtMostOneUnderRandomOperations(t *testing.T) {
	t.Parallel()

	pool := []player.Player{fwd1, fwd2, fwd3, fwd4, def1, def2, goalie}
	keys := allSlotKeys()
	rng := rand.New(rand.NewSource(42))

	l := New(3)
	for i := 0; i < 2000; i++ {
		key := keys[rng.Intn(len(keys))]
		switch rng.Intn(3) {
		case 0:
			_ = l.Pick(key, pool[rng.Intn(len(pool))])
		case 1:
			_ = l.Remove(key)
		default:
			_ = l.ToggleCaptain(key)
		}

		captains := 0
		for _, slot := range l.View().Slots {
			if slot.IsCaptain {
				captains++
				if slot.Player == nil {
					t.Fatalf("step %d: captain on empty slot %s", i, slot.Key)
				}
			}
			if slot.Player != nil && slot.Player.Position != slot.Position {
				t.Fatalf("step %d: slot %s holds %s", i, slot.Key, slot.Player.Position)
			}
		}
		if captains > 1 {
			t.Fatalf("step %d: %d captains", i, captains)
		}
		if len(l.SelectedPlayerIDs()) != len(l.slots) {
			t.Fatalf("step %d: a player occupies more than one slot", i)
		}
	}
}

func TestReconcile_MapsSnapshotIntoSlots(t *testing.T) {
	t.Parallel()

	l := New(1)
	mustPick(t, l, SlotGoalkeeper, goalie)

	report, err := l.Reconcile(Snapshot{
		Day: 1,
		Entries: []SnapshotEntry{
			{Player: fwd1, IsCaptain: true},
			{Player: def1, IsCaptain: false},
		},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.Placed != 2 {
		t.Fatalf("unexpected placed count: %d", report.Placed)
	}

	want := map[SlotKey]int64{SlotForward1: fwd1.ID, SlotDefender1: def1.ID}
	for _, slot := range l.View().Slots {
		id, occupied := want[slot.Key]
		switch {
		case occupied && (slot.Player == nil || slot.Player.ID != id):
			t.Fatalf("slot %s: expected player %d, got %+v", slot.Key, id, slot.Player)
		case !occupied && slot.Player != nil:
			t.Fatalf("slot %s: expected empty, got %+v", slot.Key, slot.Player)
		}
	}
	if captain, _ := l.Captain(); captain != SlotForward1 {
		t.Fatalf("expected captain on f1, got %q", captain)
	}
}

func TestReconcile_DropsOverflowEntries(t *testing.T) {
	t.Parallel()

	l := New(2)
	report, err := l.Reconcile(Snapshot{
		Day: 2,
		Entries: []SnapshotEntry{
			{Player: fwd1},
			{Player: fwd2},
			{Player: fwd3},
			{Player: fwd4, IsCaptain: true},
		},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(report.Dropped) != 1 || report.Dropped[0].Player.ID != fwd4.ID {
		t.Fatalf("expected fwd4 to be dropped, got %+v", report.Dropped)
	}

	forwards := 0
	for _, key := range SlotsForPosition(player.PositionForward) {
		if _, ok := l.PlayerAt(key); ok {
			forwards++
		}
	}
	if forwards != 3 {
		t.Fatalf("expected 3 forwards, got %d", forwards)
	}
	if _, ok := l.Captain(); ok {
		t.Fatalf("dropped entry must not carry the captaincy")
	}
	if got, _ := l.PlayerAt(SlotForward3); got.ID != fwd3.ID {
		t.Fatalf("expected server order to be kept, f3=%d", got.ID)
	}
}

func TestReconcile_LastCaptainWins(t *testing.T) {
	t.Parallel()

	l := New(1)
	_, err := l.Reconcile(Snapshot{
		Day: 1,
		Entries: []SnapshotEntry{
			{Player: fwd1, IsCaptain: true},
			{Player: goalie, IsCaptain: true},
		},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if captain, _ := l.Captain(); captain != SlotGoalkeeper {
		t.Fatalf("expected last captain entry to win, got %q", captain)
	}
}

func TestReconcile_DuplicateAndUnknownEntriesDropped(t *testing.T) {
	t.Parallel()

	l := New(1)
	report, err := l.Reconcile(Snapshot{
		Day: 1,
		Entries: []SnapshotEntry{
			{Player: def1},
			{Player: def1},
			{Player: player.Player{ID: 999, Position: "Winger"}},
			{Player: def2, Locked: true},
		},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.Placed != 2 || len(report.Dropped) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if got, _ := l.PlayerAt(SlotDefender2); got.ID != def2.ID {
		t.Fatalf("expected def2 in d2, got %d", got.ID)
	}
	if !reflect.DeepEqual(report.ServerLocked, []int64{def2.ID}) {
		t.Fatalf("unexpected server locked ids: %v", report.ServerLocked)
	}
}

func TestReconcile_IsDeterministic(t *testing.T) {
	t.Parallel()

	snapshot := Snapshot{
		Day: 4,
		Entries: []SnapshotEntry{
			{Player: def2},
			{Player: fwd3, IsCaptain: true},
			{Player: fwd1},
			{Player: goalie},
			{Player: def1},
		},
	}

	a, b := New(4), New(4)
	if _, err := a.Reconcile(snapshot); err != nil {
		t.Fatalf("reconcile a: %v", err)
	}
	mustPick(t, b, SlotForward2, fwd2)
	if _, err := b.Reconcile(snapshot); err != nil {
		t.Fatalf("reconcile b: %v", err)
	}
	if !reflect.DeepEqual(a.View(), b.View()) {
		t.Fatalf("reconcile is not deterministic:\na=%+v\nb=%+v", a.View(), b.View())
	}
}

func TestReconcile_StaleDayLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	l := New(5)
	mustPick(t, l, SlotForward1, fwd1)
	before := l.View()

	_, err := l.Reconcile(Snapshot{Day: 4, Entries: []SnapshotEntry{{Player: fwd2}}})
	if !errors.Is(err, ErrStaleSnapshot) {
		t.Fatalf("expected ErrStaleSnapshot, got %v", err)
	}
	if !reflect.DeepEqual(before, l.View()) {
		t.Fatalf("stale snapshot mutated state")
	}
}

func TestBuildSavePayload_EmptyLineup(t *testing.T) {
	t.Parallel()

	l := New(1)
	if _, err := l.BuildSavePayload(); !errors.Is(err, ErrEmptyLineup) {
		t.Fatalf("expected ErrEmptyLineup, got %v", err)
	}
}

func TestBuildSavePayload_CanonicalOrderRegardlessOfPickOrder(t *testing.T) {
	t.Parallel()

	l := New(1)
	mustPick(t, l, SlotGoalkeeper, goalie)
	mustPick(t, l, SlotForward1, fwd1)
	mustToggle(t, l, SlotForward1)

	got, err := l.BuildSavePayload()
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}
	want := []SavePlayer{
		{PlayerID: fwd1.ID, IsCaptain: true},
		{PlayerID: goalie.ID, IsCaptain: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected payload: got=%+v want=%+v", got, want)
	}
}

func TestSchema_SlotCountsAndOrder(t *testing.T) {
	t.Parallel()

	if got := Capacity(player.PositionForward); got != 3 {
		t.Fatalf("forward capacity=%d", got)
	}
	if got := Capacity(player.PositionDefender); got != 2 {
		t.Fatalf("defender capacity=%d", got)
	}
	if got := Capacity(player.PositionGoalkeeper); got != 1 {
		t.Fatalf("goalkeeper capacity=%d", got)
	}
	if !reflect.DeepEqual(SlotsForPosition(player.PositionForward), []SlotKey{SlotForward1, SlotForward2, SlotForward3}) {
		t.Fatalf("unexpected forward fill order")
	}
	if got := PositionOf(SlotDefender2); got != player.PositionDefender {
		t.Fatalf("d2 position=%s", got)
	}
	if got := Label(SlotGoalkeeper); got != "Goalkeeper" {
		t.Fatalf("gk label=%q", got)
	}

	// callers cannot mutate the schema through returned slices
	keys := SlotsForPosition(player.PositionDefender)
	keys[0] = SlotGoalkeeper
	if SlotsForPosition(player.PositionDefender)[0] != SlotDefender1 {
		t.Fatalf("schema mutated through returned slice")
	}
}

func TestParseSlotKey(t *testing.T) {
	t.Parallel()

	key, err := ParseSlotKey(" GK ")
	if err != nil || key != SlotGoalkeeper {
		t.Fatalf("parse gk: key=%q err=%v", key, err)
	}
	if _, err := ParseSlotKey("d3"); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}

func allSlotKeys() []SlotKey {
	out := make([]SlotKey, 0, len(schema))
	for _, slot := range Slots() {
		out = append(out, slot.Key)
	}
	return out
}

func mustPick(t *testing.T, l *Lineup, key SlotKey, p player.Player) {
	t.Helper()
	if err := l.Pick(key, p); err != nil {
		t.Fatalf("pick %s: %v", key, err)
	}
}

func mustToggle(t *testing.T, l *Lineup, key SlotKey) {
	t.Helper()
	if err := l.ToggleCaptain(key); err != nil {
		t.Fatalf("toggle captain %s: %v", key, err)
	}
}
