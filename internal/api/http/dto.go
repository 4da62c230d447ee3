package http

// RegisterRequest creates or authenticates an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// JoinRequest enters the matchmaking queue.
type JoinRequest struct {
	Username   string `json:"username"`
	GroupKey   string `json:"groupKey"`
	BoardWidth int    `json:"boardWidth"`
}

// GameRequest addresses an existing game.
type GameRequest struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
}

// MoveRequest moves the piece standing on the flat cell index
// (row*boardWidth + col).
type MoveRequest struct {
	GameID    string `json:"gameId"`
	Username  string `json:"username"`
	CellIndex *int   `json:"cellIndex"`
}

// RoomRequest creates or joins a private room by password.
type RoomRequest struct {
	Username     string `json:"username"`
	RoomPassword string `json:"roomPassword"`
}
