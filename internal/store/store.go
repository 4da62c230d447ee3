package store

import (
	"time"

	"tab-server/internal/game"
)

// User is a persisted account with ranking stats.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"createdAt"`
}

// QueueEntry is one player waiting to be matched.
type QueueEntry struct {
	Username   string    `json:"username"`
	BoardWidth int       `json:"boardWidth"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// Room is a private match joined by password instead of the public queue.
type Room struct {
	Key       string    `json:"key"`
	GameID    string    `json:"gameId"`
	Creator   string    `json:"player1"` // blue
	Joiner    string    `json:"player2"` // red
	Status    string    `json:"status"`  // "waiting" or "playing"
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the durable state the rules engine reads and writes. Reads of
// a missing record report ok=false; errors are infrastructural faults.
type Store interface {
	Game(id string) (*game.Game, bool, error)
	Games() ([]*game.Game, error)
	SaveGame(g *game.Game) error
	DeleteGame(id string) error

	User(username string) (*User, bool, error)
	SaveUser(u *User) error
	Users() ([]*User, error)

	Queue(groupKey string) ([]QueueEntry, error)
	SaveQueue(groupKey string, q []QueueEntry) error
	// RemoveQueued drops the player from every group's queue.
	RemoveQueued(username string) error

	Room(key string) (*Room, bool, error)
	SaveRoom(r *Room) error
}
