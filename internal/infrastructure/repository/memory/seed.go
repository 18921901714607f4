package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
)

const ChampionshipYear = 2026

// SeedPlayers returns a small championship roster: three forwards, two
// defenders and one goalkeeper for each of six teams.
func SeedPlayers() []player.Player {
	rows := []struct {
		team string
		fwd  [3]string
		def  [2]string
		gk   string
	}{
		{team: "CZE", fwd: [3]string{"David Pastrnak", "Roman Cervenka", "Dominik Kubalik"}, def: [2]string{"Radko Gudas", "Filip Hronek"}, gk: "Lukas Dostal"},
		{team: "SVK", fwd: [3]string{"Juraj Slafkovsky", "Tomas Tatar", "Pavol Regenda"}, def: [2]string{"Simon Nemec", "Martin Fehervary"}, gk: "Samuel Hlavaj"},
		{team: "FIN", fwd: [3]string{"Mikael Granlund", "Sebastian Aho", "Kaapo Kakko"}, def: [2]string{"Miro Heiskanen", "Esa Lindell"}, gk: "Juuse Saros"},
		{team: "SWE", fwd: [3]string{"William Nylander", "Elias Pettersson", "Lucas Raymond"}, def: [2]string{"Rasmus Dahlin", "Erik Karlsson"}, gk: "Filip Gustavsson"},
		{team: "SUI", fwd: [3]string{"Nico Hischier", "Kevin Fiala", "Nino Niederreiter"}, def: [2]string{"Roman Josi", "Jonas Siegenthaler"}, gk: "Leonardo Genoni"},
		{team: "CAN", fwd: [3]string{"Connor McDavid", "Sidney Crosby", "Nathan MacKinnon"}, def: [2]string{"Cale Makar", "Josh Morrissey"}, gk: "Jordan Binnington"},
	}

	out := make([]player.Player, 0, len(rows)*6)
	for i, row := range rows {
		base := int64(i+1) * 100
		for j, name := range row.fwd {
			out = append(out, seedPlayer(base+int64(j)+1, name, player.PositionForward, row.team))
		}
		for j, name := range row.def {
			out = append(out, seedPlayer(base+int64(j)+11, name, player.PositionDefender, row.team))
		}
		out = append(out, seedPlayer(base+21, row.gk, player.PositionGoalkeeper, row.team))
	}
	return out
}

func seedPlayer(id int64, name string, position player.Position, team string) player.Player {
	return player.Player{
		ID:               id,
		Name:             name,
		Position:         position,
		TeamAbbr:         team,
		ChampionshipYear: ChampionshipYear,
	}
}

// SeedMatches schedules three match days starting on the calendar day of
// start (UTC). Each day has three games at 12:20, 16:20 and 20:20.
func SeedMatches(start time.Time) []match.Match {
	pairings := [][3][2]string{
		{{"CZE", "SVK"}, {"FIN", "SWE"}, {"SUI", "CAN"}},
		{{"SWE", "CZE"}, {"CAN", "FIN"}, {"SVK", "SUI"}},
		{{"CZE", "CAN"}, {"SUI", "FIN"}, {"SWE", "SVK"}},
	}
	kickoffs := []time.Duration{12*time.Hour + 20*time.Minute, 16*time.Hour + 20*time.Minute, 20*time.Hour + 20*time.Minute}

	first := start.UTC().Truncate(24 * time.Hour)
	out := make([]match.Match, 0, len(pairings)*3)
	id := int64(1)
	for dayIdx, games := range pairings {
		date := first.AddDate(0, 0, dayIdx)
		for gameIdx, pair := range games {
			out = append(out, match.Match{
				ID:        id,
				Day:       dayIdx + 1,
				Date:      date,
				MatchTime: date.Add(kickoffs[gameIdx]),
				HomeTeam:  pair[0],
				AwayTeam:  pair[1],
				Status:    match.StatusUpcoming,
			})
			id++
		}
	}
	return out
}

// Rival is a seeded opponent with the same picks on every day.
type Rival struct {
	UserID   string
	Username string
	Picks    []int64
	Captain  int64
}

func SeedRivals() []Rival {
	return []Rival{
		{UserID: "seed-user-1", Username: "bardown", Picks: []int64{101, 301, 601, 611, 412, 221}, Captain: 601},
		{UserID: "seed-user-2", Username: "fivehole", Picks: []int64{402, 502, 302, 511, 312, 321}, Captain: 502},
	}
}
