package player

import "testing"

func TestParsePosition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Position
	}{
		{in: "Forward", want: PositionForward},
		{in: " defender ", want: PositionDefender},
		{in: "GK", want: PositionGoalkeeper},
		{in: "g", want: PositionGoalkeeper},
		{in: "F", want: PositionForward},
	}
	for _, tc := range cases {
		got, err := ParsePosition(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: got=%s want=%s", tc.in, got, tc.want)
		}
	}

	if _, err := ParsePosition("Midfielder"); err == nil {
		t.Fatalf("expected error for unknown position")
	}
}

func TestPlayerValidate(t *testing.T) {
	t.Parallel()

	valid := Player{ID: 7, Name: "Roman Cervenka", Position: PositionForward, TeamAbbr: "CZE", ChampionshipYear: 2026}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}

	invalid := valid
	invalid.Position = "Winger"
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected invalid position error")
	}

	invalid = valid
	invalid.ID = 0
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected invalid id error")
	}
}
