package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	index   map[int64]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[int64]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}

	return &PlayerRepository{
		players: append([]player.Player(nil), players...),
		index:   index,
	}
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		if filter.TeamAbbr != "" && !strings.EqualFold(p.TeamAbbr, filter.TeamAbbr) {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok
}
