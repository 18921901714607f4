package fantasyapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/score"
)

type errorEnvelope struct {
	Detail any `json:"detail"`
}

type playerDTO struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Position         string `json:"position"`
	TeamAbbr         string `json:"team_abbr"`
	ChampionshipYear int    `json:"championship_year"`
}

type matchDTO struct {
	ID        int64  `json:"id"`
	Day       int    `json:"day"`
	Date      string `json:"date"`
	MatchTime string `json:"match_time"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Status    string `json:"status"`
}

type lineupEntryDTO struct {
	PlayerID  int64     `json:"player_id"`
	IsCaptain bool      `json:"is_captain"`
	Locked    bool      `json:"locked"`
	Player    playerDTO `json:"player"`
}

type lineupResponseDTO struct {
	Day    int              `json:"day"`
	Lineup []lineupEntryDTO `json:"lineup"`
}

type lineupPlayerDTO struct {
	PlayerID  int64 `json:"player_id"`
	IsCaptain bool  `json:"is_captain"`
}

type lineupSaveRequestDTO struct {
	Day     int               `json:"day"`
	Players []lineupPlayerDTO `json:"players"`
}

type standingDTO struct {
	Rank        int                `json:"rank"`
	Username    string             `json:"username"`
	UserID      string             `json:"user_id"`
	TotalPoints float64            `json:"total_points"`
	ScoresByDay map[string]float64 `json:"scores_by_day"`
}

type playerScoreDTO struct {
	PlayerID      int64   `json:"player_id"`
	Name          string  `json:"name"`
	TeamAbbr      string  `json:"team_abbr"`
	Position      string  `json:"position"`
	IsCaptain     bool    `json:"is_captain"`
	FantasyPoints float64 `json:"fantasy_points"`
}

type dayScoreDTO struct {
	Day         int              `json:"day"`
	TotalPoints float64          `json:"total_points"`
	Players     []playerScoreDTO `json:"players"`
}

func (d playerDTO) toDomain() player.Player {
	position, err := player.ParsePosition(d.Position)
	if err != nil {
		// unknown positions are kept verbatim and dropped by reconcile
		position = player.Position(strings.TrimSpace(d.Position))
	}
	return player.Player{
		ID:               d.ID,
		Name:             strings.TrimSpace(d.Name),
		Position:         position,
		TeamAbbr:         strings.ToUpper(strings.TrimSpace(d.TeamAbbr)),
		ChampionshipYear: d.ChampionshipYear,
	}
}

func (d matchDTO) toDomain() match.Match {
	return match.Match{
		ID:        d.ID,
		Day:       d.Day,
		Date:      parseDate(d.Date),
		MatchTime: parseMatchTime(d.MatchTime),
		HomeTeam:  strings.ToUpper(strings.TrimSpace(d.HomeTeam)),
		AwayTeam:  strings.ToUpper(strings.TrimSpace(d.AwayTeam)),
		Status:    match.NormalizeStatus(d.Status),
	}
}

func (d lineupResponseDTO) toDomain() lineup.Snapshot {
	out := lineup.Snapshot{
		Day:     d.Day,
		Entries: make([]lineup.SnapshotEntry, 0, len(d.Lineup)),
	}
	for _, entry := range d.Lineup {
		item := entry.Player.toDomain()
		if item.ID == 0 {
			item.ID = entry.PlayerID
		}
		out.Entries = append(out.Entries, lineup.SnapshotEntry{
			Player:    item,
			IsCaptain: entry.IsCaptain,
			Locked:    entry.Locked,
		})
	}
	return out
}

func (d standingDTO) toDomain() score.Standing {
	byDay := make(map[int]float64, len(d.ScoresByDay))
	for key, points := range d.ScoresByDay {
		day, ok := parsePositiveInt(key)
		if !ok {
			continue
		}
		byDay[day] = points
	}
	return score.Standing{
		Rank:        d.Rank,
		UserID:      d.UserID,
		Username:    d.Username,
		TotalPoints: d.TotalPoints,
		ByDay:       byDay,
	}
}

func (d dayScoreDTO) toDomain() score.DayScore {
	out := score.DayScore{
		Day:         d.Day,
		TotalPoints: d.TotalPoints,
		Players:     make([]score.PlayerScore, 0, len(d.Players)),
	}
	for _, item := range d.Players {
		out.Players = append(out.Players, score.PlayerScore{
			PlayerID:      item.PlayerID,
			Name:          item.Name,
			TeamAbbr:      item.TeamAbbr,
			Position:      item.Position,
			IsCaptain:     item.IsCaptain,
			FantasyPoints: item.FantasyPoints,
		})
	}
	return out
}

func toSaveRequest(day int, players []lineup.SavePlayer) lineupSaveRequestDTO {
	out := lineupSaveRequestDTO{
		Day:     day,
		Players: make([]lineupPlayerDTO, 0, len(players)),
	}
	for _, item := range players {
		out.Players = append(out.Players, lineupPlayerDTO{
			PlayerID:  item.PlayerID,
			IsCaptain: item.IsCaptain,
		})
	}
	return out
}

var matchTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseMatchTime reads an ISO-8601 instant. Values without an offset are
// UTC.
func parseMatchTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range matchTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func parseDate(value string) time.Time {
	parsed, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func parsePositiveInt(value string) (int, bool) {
	out, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || out <= 0 {
		return 0, false
	}
	return out, true
}
