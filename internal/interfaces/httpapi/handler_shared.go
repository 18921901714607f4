package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/score"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hockey/internal/usecase"
)

type Handler struct {
	lineupService *usecase.LineupService
	scoreService  *usecase.ScoreService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(lineupService *usecase.LineupService, scoreService *usecase.ScoreService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		lineupService: lineupService,
		scoreService:  scoreService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type openDayRequest struct {
	Day int `json:"day" validate:"required,gt=0"`
}

type pickPlayerRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
}

type playerDTO struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Position         string `json:"position"`
	TeamAbbr         string `json:"team_abbr"`
	ChampionshipYear int    `json:"championship_year,omitempty"`
}

type slotDTO struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Position  string     `json:"position"`
	Player    *playerDTO `json:"player"`
	IsCaptain bool       `json:"is_captain"`
	Locked    bool       `json:"locked"`
}

type matchDTO struct {
	ID             int64  `json:"id"`
	Day            int    `json:"day"`
	Date           string `json:"date,omitempty"`
	MatchTime      string `json:"match_time,omitempty"`
	HomeTeam       string `json:"home_team"`
	AwayTeam       string `json:"away_team"`
	Status         string `json:"status"`
	Started        bool   `json:"started"`
	LocksInSeconds int64  `json:"locks_in_seconds"`
}

type lineupDTO struct {
	Day         int        `json:"day"`
	Active      bool       `json:"active"`
	Loading     bool       `json:"loading"`
	Captain     string     `json:"captain,omitempty"`
	SelectedIDs []int64    `json:"selected_ids"`
	Slots       []slotDTO  `json:"slots"`
	Matches     []matchDTO `json:"matches"`
}

type slotSchemaDTO struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Position string `json:"position"`
}

type candidateDTO struct {
	playerDTO
	Selected bool `json:"selected"`
	Locked   bool `json:"locked"`
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

type scoreOverviewDTO struct {
	Standings []standingDTO `json:"standings"`
	History   []dayScoreDTO `json:"history"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:               p.ID,
		Name:             p.Name,
		Position:         string(p.Position),
		TeamAbbr:         p.TeamAbbr,
		ChampionshipYear: p.ChampionshipYear,
	}
}

func sessionViewToDTO(ctx context.Context, v usecase.SessionView) lineupDTO {
	_, span := startSpan(ctx, "httpapi.sessionViewToDTO")
	defer span.End()

	out := lineupDTO{
		Day:         v.Day,
		Active:      v.Active,
		Loading:     v.Loading,
		Captain:     string(v.Captain),
		SelectedIDs: append([]int64{}, v.SelectedIDs...),
		Slots:       make([]slotDTO, 0, len(v.Slots)),
		Matches:     make([]matchDTO, 0, len(v.Matches)),
	}
	for _, slot := range v.Slots {
		item := slotDTO{
			Key:       string(slot.Key),
			Label:     slot.Label,
			Position:  string(slot.Position),
			IsCaptain: slot.IsCaptain,
			Locked:    slot.Locked,
		}
		if slot.Player != nil {
			p := playerToDTO(*slot.Player)
			item.Player = &p
		}
		out.Slots = append(out.Slots, item)
	}
	for _, m := range v.Matches {
		item := matchToDTO(m.Match)
		item.Started = m.Started
		item.LocksInSeconds = int64(m.LocksIn / time.Second)
		out.Matches = append(out.Matches, item)
	}
	return out
}

func matchToDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:       m.ID,
		Day:      m.Day,
		HomeTeam: m.HomeTeam,
		AwayTeam: m.AwayTeam,
		Status:   m.Status,
	}
	if !m.Date.IsZero() {
		out.Date = m.Date.Format(time.DateOnly)
	}
	if !m.MatchTime.IsZero() {
		out.MatchTime = m.MatchTime.UTC().Format(time.RFC3339)
	}
	return out
}

func matchesToDTO(items []match.Match, now time.Time) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		item := matchToDTO(m)
		item.Started = match.HasStarted(m, now)
		item.LocksInSeconds = int64(match.LocksIn(m, now) / time.Second)
		out = append(out, item)
	}
	return out
}

func slotSchemaToDTO(slots []lineup.Slot) []slotSchemaDTO {
	out := make([]slotSchemaDTO, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slotSchemaDTO{Key: string(slot.Key), Label: slot.Label, Position: string(slot.Position)})
	}
	return out
}

func candidatesToDTO(items []usecase.Candidate) []candidateDTO {
	out := make([]candidateDTO, 0, len(items))
	for _, item := range items {
		out = append(out, candidateDTO{
			playerDTO: playerToDTO(item.Player),
			Selected:  item.Selected,
			Locked:    item.Locked,
		})
	}
	return out
}

func standingsToDTO(items []score.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, item := range items {
		byDay := make(map[string]float64, len(item.ByDay))
		for day, pts := range item.ByDay {
			byDay[strconv.Itoa(day)] = pts
		}
		out = append(out, standingDTO{
			Rank:        item.Rank,
			Username:    item.Username,
			UserID:      item.UserID,
			TotalPoints: item.TotalPoints,
			ScoresByDay: byDay,
		})
	}
	return out
}

func dayScoresToDTO(items []score.DayScore) []dayScoreDTO {
	out := make([]dayScoreDTO, 0, len(items))
	for _, item := range items {
		players := make([]playerScoreDTO, 0, len(item.Players))
		for _, p := range item.Players {
			players = append(players, playerScoreDTO{
				PlayerID:      p.PlayerID,
				Name:          p.Name,
				TeamAbbr:      p.TeamAbbr,
				Position:      p.Position,
				IsCaptain:     p.IsCaptain,
				FantasyPoints: p.FantasyPoints,
			})
		}
		out = append(out, dayScoreDTO{Day: item.Day, TotalPoints: item.TotalPoints, Players: players})
	}
	return out
}

func parseDayQuery(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("day"))
	if raw == "" {
		return 0, fmt.Errorf("%w: day query parameter is required", usecase.ErrInvalidInput)
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day <= 0 {
		return 0, fmt.Errorf("%w: day must be a positive integer", usecase.ErrInvalidInput)
	}
	return day, nil
}

func parseSlotPath(r *http.Request) (lineup.SlotKey, error) {
	return lineup.ParseSlotKey(r.PathValue("slot"))
}
