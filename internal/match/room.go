package match

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tab-server/internal/game"
	"tab-server/internal/store"
)

// RoomResult is the outcome of creating, joining or reconnecting to a
// private room.
type RoomResult struct {
	Waiting  bool       `json:"waiting"`
	RoomKey  string     `json:"roomKey,omitempty"`
	GameID   string     `json:"gameId,omitempty"`
	Color    game.Color `json:"color,omitempty"`
	Opponent string     `json:"opponent,omitempty"`
	Status   string     `json:"status,omitempty"`
}

// Room creates a private room for the password, joins a waiting one, or
// reconnects a member. The creator plays blue, the joiner red.
func (m *Manager) Room(username, password string) (*RoomResult, error) {
	key := "room_" + password

	m.roomMu.Lock()
	defer m.roomMu.Unlock()

	r, ok, err := m.store.Room(key)
	if err != nil {
		return nil, fmt.Errorf("load room: %w", err)
	}

	switch {
	case !ok:
		r = &store.Room{
			Key:       key,
			Creator:   username,
			Status:    "waiting",
			CreatedAt: time.Now(),
		}
		if err := m.store.SaveRoom(r); err != nil {
			return nil, fmt.Errorf("save room: %w", err)
		}
		return &RoomResult{Waiting: true, RoomKey: key, Color: game.Blue}, nil

	case r.Status == "waiting" && r.Creator != username:
		g := game.NewGame(uuid.NewString(), r.Creator, username, m.cfg.BoardSize)
		if err := m.store.SaveGame(g); err != nil {
			return nil, fmt.Errorf("save game: %w", err)
		}
		r.Joiner = username
		r.GameID = g.ID
		r.Status = "playing"
		if err := m.store.SaveRoom(r); err != nil {
			return nil, fmt.Errorf("save room: %w", err)
		}
		logrus.WithFields(logrus.Fields{"game": g.ID, "room": key}).Info("room game started")
		return &RoomResult{GameID: g.ID, Color: game.Red, Opponent: r.Creator, Status: r.Status}, nil

	case r.Creator == username || r.Joiner == username:
		color := game.Blue
		opponent := r.Joiner
		if r.Joiner == username {
			color = game.Red
			opponent = r.Creator
		}
		return &RoomResult{
			Waiting:  r.Status == "waiting",
			RoomKey:  key,
			GameID:   r.GameID,
			Color:    color,
			Opponent: opponent,
			Status:   r.Status,
		}, nil

	default:
		return nil, game.ErrRoomFull
	}
}
