package match

import (
	"fmt"
	"time"

	"tab-server/internal/game"
)

// Snapshot is the read-only view of a game streamed or polled by clients.
// Viewer-specific fields (PlayerColor, IsMyTurn, Opponent) are empty on
// the neutral view broadcast to every subscriber.
type Snapshot struct {
	ID           string                      `json:"id"`
	BoardWidth   int                         `json:"boardWidth"`
	Turn         game.Color                  `json:"currentPlayer"`
	Dice         int                         `json:"diceValue"`
	BonusPending bool                        `json:"bonusPending"`
	Pieces       map[game.Color][]game.Piece `json:"pieces"`
	Status       game.Status                 `json:"status"`
	Winner       game.Color                  `json:"winner,omitempty"`
	PlayerColor  game.Color                  `json:"playerColor,omitempty"`
	IsMyTurn     bool                        `json:"isMyTurn"`
	Opponent     string                      `json:"opponent,omitempty"`
	LastUpdate   time.Time                   `json:"lastUpdate"`
}

func viewOf(g *game.Game) *Snapshot {
	return &Snapshot{
		ID:           g.ID,
		BoardWidth:   g.BoardWidth,
		Turn:         g.Turn,
		Dice:         g.Dice,
		BonusPending: g.BonusPending,
		Pieces:       g.Pieces,
		Status:       g.Status,
		Winner:       g.Winner,
		LastUpdate:   g.LastUpdate,
	}
}

// Snapshot returns the latest committed state of the game as seen by the
// given player. It never mutates the record and may run concurrently with
// moves; the store hands out copies, so no torn state is visible.
func (m *Manager) Snapshot(gameID, username string) (*Snapshot, error) {
	g, ok, err := m.store.Game(gameID)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	if !ok {
		return nil, game.ErrGameNotFound
	}
	s := viewOf(g)
	if color, ok := g.PlayerColor(username); ok {
		s.PlayerColor = color
		s.IsMyTurn = g.Turn == color && g.Status == game.StatusActive
		s.Opponent = g.Players[color.Opponent()]
	}
	return s, nil
}
