package game

import "time"

// Color identifies one of the two sides of a Tâb game.
type Color string

const (
	Red  Color = "red"
	Blue Color = "blue"
)

func (c Color) Opponent() Color {
	if c == Red {
		return Blue
	}
	return Red
}

// HomeRow is the row a color's pieces start on.
func (c Color) HomeRow() int {
	if c == Red {
		return 0
	}
	return 3
}

// EnemyRow is the opponent's home row, the territory a piece may visit once.
func (c Color) EnemyRow() int {
	return c.Opponent().HomeRow()
}

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

type Piece struct {
	Row                        int  `json:"row"`
	Col                        int  `json:"col"`
	Active                     bool `json:"active"`
	InEnemyTerritory           bool `json:"inEnemyTerritory"`
	HasCompletedEnemyTerritory bool `json:"hasCompletedEnemyTerritory"`
}

type Game struct {
	ID           string            `json:"id"`
	Players      map[Color]string  `json:"players"`
	BoardWidth   int               `json:"boardWidth"`
	Turn         Color             `json:"currentPlayer"`
	Dice         int               `json:"diceValue"` // 0 = not rolled
	BonusPending bool              `json:"bonusPending"`
	Pieces       map[Color][]Piece `json:"pieces"`
	Status       Status            `json:"status"`
	Winner       Color             `json:"winner,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	LastUpdate   time.Time         `json:"lastUpdate"`
}

// NewGame sets up a fresh board: one inactive piece per column on each
// color's home row, red to move, dice not rolled.
func NewGame(id, bluePlayer, redPlayer string, width int) *Game {
	if width <= 0 {
		width = 7
	}
	pieces := map[Color][]Piece{Red: {}, Blue: {}}
	for col := 0; col < width; col++ {
		pieces[Red] = append(pieces[Red], Piece{Row: Red.HomeRow(), Col: col})
		pieces[Blue] = append(pieces[Blue], Piece{Row: Blue.HomeRow(), Col: col})
	}
	now := time.Now()
	return &Game{
		ID:         id,
		Players:    map[Color]string{Blue: bluePlayer, Red: redPlayer},
		BoardWidth: width,
		Turn:       Red,
		Pieces:     pieces,
		Status:     StatusActive,
		CreatedAt:  now,
		LastUpdate: now,
	}
}

// PlayerColor looks up which side the given nickname plays.
func (g *Game) PlayerColor(nick string) (Color, bool) {
	for c, n := range g.Players {
		if n == nick {
			return c, true
		}
	}
	return "", false
}

// PieceIndexAt finds the index of the color's piece occupying (row, col),
// or -1 when the cell is empty.
func (g *Game) PieceIndexAt(c Color, row, col int) int {
	for i, p := range g.Pieces[c] {
		if p.Row == row && p.Col == col {
			return i
		}
	}
	return -1
}
