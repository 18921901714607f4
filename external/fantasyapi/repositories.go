package fantasyapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/score"
)

// PlayerRepository reads the roster catalog.
type PlayerRepository struct {
	client *Client
}

func NewPlayerRepository(client *Client) *PlayerRepository {
	return &PlayerRepository{client: client}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	query := url.Values{}
	if filter.Position != "" {
		query.Set("position", string(filter.Position))
	}
	if filter.TeamAbbr != "" {
		query.Set("team", filter.TeamAbbr)
	}

	var payload []playerDTO
	if err := r.client.getJSON(ctx, "/players", query, &payload); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// MatchRepository reads the match schedule.
type MatchRepository struct {
	client *Client
}

func NewMatchRepository(client *Client) *MatchRepository {
	return &MatchRepository{client: client}
}

func (r *MatchRepository) ListToday(ctx context.Context) ([]match.Match, error) {
	var payload []matchDTO
	if err := r.client.getJSON(ctx, "/matches/today", nil, &payload); err != nil {
		return nil, fmt.Errorf("list today's matches: %w", err)
	}
	return mapMatches(payload), nil
}

func (r *MatchRepository) ListByDay(ctx context.Context, day int) ([]match.Match, error) {
	query := url.Values{}
	query.Set("day", strconv.Itoa(day))

	var payload []matchDTO
	if err := r.client.getJSON(ctx, "/matches", query, &payload); err != nil {
		return nil, fmt.Errorf("list matches day=%d: %w", day, err)
	}
	return mapMatches(payload), nil
}

func mapMatches(payload []matchDTO) []match.Match {
	out := make([]match.Match, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out
}

// LineupRepository fetches and saves the caller's lineup.
type LineupRepository struct {
	client *Client
}

func NewLineupRepository(client *Client) *LineupRepository {
	return &LineupRepository{client: client}
}

// Get returns the saved lineup of day. A missing lineup is an empty
// snapshot.
func (r *LineupRepository) Get(ctx context.Context, day int) (lineup.Snapshot, error) {
	query := url.Values{}
	query.Set("day", strconv.Itoa(day))

	var payload lineupResponseDTO
	if err := r.client.getJSON(ctx, "/lineup/me", query, &payload); err != nil {
		if isNotFound(err) {
			return lineup.EmptySnapshot(day), nil
		}
		return lineup.Snapshot{}, fmt.Errorf("get lineup day=%d: %w", day, err)
	}
	if payload.Day == 0 {
		payload.Day = day
	}
	return payload.toDomain(), nil
}

func (r *LineupRepository) Save(ctx context.Context, day int, players []lineup.SavePlayer) (lineup.Snapshot, error) {
	var payload lineupResponseDTO
	if err := r.client.postJSON(ctx, "/lineup/me", toSaveRequest(day, players), &payload); err != nil {
		return lineup.Snapshot{}, fmt.Errorf("save lineup day=%d: %w", day, err)
	}
	if payload.Day == 0 {
		payload.Day = day
	}
	return payload.toDomain(), nil
}

// ScoreRepository reads standings and score history.
type ScoreRepository struct {
	client *Client
}

func NewScoreRepository(client *Client) *ScoreRepository {
	return &ScoreRepository{client: client}
}

func (r *ScoreRepository) Standings(ctx context.Context) ([]score.Standing, error) {
	var payload []standingDTO
	if err := r.client.getJSON(ctx, "/scores/standings", nil, &payload); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	return mapStandings(payload), nil
}

func (r *ScoreRepository) ByDay(ctx context.Context, day int) ([]score.Standing, error) {
	query := url.Values{}
	query.Set("day", strconv.Itoa(day))

	var payload []standingDTO
	if err := r.client.getJSON(ctx, "/scores", query, &payload); err != nil {
		return nil, fmt.Errorf("list scores day=%d: %w", day, err)
	}
	return mapStandings(payload), nil
}

func (r *ScoreRepository) Mine(ctx context.Context) ([]score.DayScore, error) {
	var payload []dayScoreDTO
	if err := r.client.getJSON(ctx, "/scores/me", nil, &payload); err != nil {
		return nil, fmt.Errorf("list my scores: %w", err)
	}
	out := make([]score.DayScore, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func mapStandings(payload []standingDTO) []score.Standing {
	out := make([]score.Standing, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out
}
