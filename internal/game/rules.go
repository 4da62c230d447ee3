package game

// Action classifies what a validated move will do to the piece.
type Action string

const (
	ActionActivate Action = "activate"
	ActionMove     Action = "move"
)

// Move is a validated, not yet executed move.
type Move struct {
	PieceIndex  int    `json:"pieceIndex"`
	Action      Action `json:"action"`
	Destination Cell   `json:"destination"`
}

func hasInactiveAtHome(pieces []Piece, c Color) bool {
	home := c.HomeRow()
	for _, p := range pieces {
		if p.Row == home && !p.Active {
			return true
		}
	}
	return false
}

// pieceFrozen reports whether the piece sits in enemy territory while a
// sibling still waits inactive on the home row.
func pieceFrozen(p Piece, pieces []Piece, c Color) bool {
	if p.Row != c.EnemyRow() {
		return false
	}
	return hasInactiveAtHome(pieces, c)
}

// Validate checks whether the color's piece at pieceIndex may move steps
// cells. It never mutates the game.
func Validate(g *Game, c Color, pieceIndex, steps int) (Move, error) {
	pieces := g.Pieces[c]
	if pieceIndex < 0 || pieceIndex >= len(pieces) {
		return Move{}, ErrInvalidPiece
	}
	p := pieces[pieceIndex]
	graph := BuildGraph(c, g.BoardWidth)

	if !p.Active {
		if steps != 1 {
			return Move{}, ErrActivationRequiresOne
		}
		dest, ok := graph.Destination(p, 1)
		if !ok {
			return Move{}, ErrNoPath
		}
		if collides(pieces, pieceIndex, dest) {
			return Move{}, ErrOwnPieceCollision
		}
		return Move{PieceIndex: pieceIndex, Action: ActionActivate, Destination: dest}, nil
	}

	if pieceFrozen(p, pieces, c) {
		return Move{}, ErrPieceFrozen
	}

	dest, ok := graph.Destination(p, steps)
	if !ok {
		return Move{}, ErrNoPath
	}
	if collides(pieces, pieceIndex, dest) {
		return Move{}, ErrOwnPieceCollision
	}
	return Move{PieceIndex: pieceIndex, Action: ActionMove, Destination: dest}, nil
}

func collides(pieces []Piece, moving int, dest Cell) bool {
	for i, p := range pieces {
		if i != moving && p.Row == dest.Row && p.Col == dest.Col {
			return true
		}
	}
	return false
}

// LegalMoves enumerates every move the color can make with the current
// dice value. Empty when the dice has not been rolled or nothing can move.
func LegalMoves(g *Game, c Color) []Move {
	if g.Dice == 0 {
		return nil
	}
	var moves []Move
	for i := range g.Pieces[c] {
		if mv, err := Validate(g, c, i, g.Dice); err == nil {
			moves = append(moves, mv)
		}
	}
	return moves
}
