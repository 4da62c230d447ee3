package game

import (
	"math/rand"
	"time"
)

// Capture describes an opponent piece removed by a move.
type Capture struct {
	Color Color `json:"color"`
	Cell  Cell  `json:"cell"`
}

// MoveResult reports the effects of an executed move.
type MoveResult struct {
	PieceIndex int      `json:"pieceIndex"`
	Piece      Piece    `json:"piece"`
	Captured   *Capture `json:"captured,omitempty"`
	GameOver   bool     `json:"gameOver"`
	Winner     Color    `json:"winner,omitempty"`
	BonusRoll  bool     `json:"bonusRoll"`
	NextTurn   Color    `json:"nextTurn"`
}

func (g *Game) checkTurn(c Color) error {
	if g.Status != StatusActive {
		return ErrGameNotActive
	}
	if g.Turn != c {
		return ErrNotYourTurn
	}
	return nil
}

// Roll throws the sticks for the color whose turn it is. Rolling twice is
// rejected unless the showing value is repeatable and no move exists with
// it, in which case a re-roll is mandatory.
func (g *Game) Roll(c Color, rng *rand.Rand) (Roll, error) {
	if err := g.checkTurn(c); err != nil {
		return Roll{}, err
	}
	if g.Dice != 0 {
		if !Repeatable(g.Dice) || len(LegalMoves(g, c)) > 0 {
			return Roll{}, ErrDiceAlreadyRolled
		}
	}
	r := RollSticks(rng)
	g.Dice = r.Value
	g.BonusPending = false
	g.LastUpdate = time.Now()
	return r, nil
}

// ApplyMove validates and executes a move of the color's piece at
// pieceIndex using the current dice value. On rejection the game is left
// untouched.
//
// A repeatable value grants a bonus roll only when the move captured
// nothing; a capturing move always hands the turn over.
func (g *Game) ApplyMove(c Color, pieceIndex int) (MoveResult, error) {
	if err := g.checkTurn(c); err != nil {
		return MoveResult{}, err
	}
	if g.Dice == 0 {
		return MoveResult{}, ErrDiceNotRolled
	}
	mv, err := Validate(g, c, pieceIndex, g.Dice)
	if err != nil {
		return MoveResult{}, err
	}

	p := &g.Pieces[c][pieceIndex]
	wasInTerritory := p.Row == c.EnemyRow()
	if mv.Action == ActionActivate {
		p.Active = true
	}
	p.Row = mv.Destination.Row
	p.Col = mv.Destination.Col

	p.InEnemyTerritory = p.Row == c.EnemyRow()
	if wasInTerritory && !p.InEnemyTerritory && !p.HasCompletedEnemyTerritory {
		// First successful round trip through enemy territory is
		// permanently recorded; the resolver will refuse re-entry.
		p.HasCompletedEnemyTerritory = true
	}

	res := MoveResult{PieceIndex: pieceIndex, Piece: *p}

	enemy := c.Opponent()
	if idx := g.PieceIndexAt(enemy, p.Row, p.Col); idx >= 0 {
		g.Pieces[enemy] = append(g.Pieces[enemy][:idx], g.Pieces[enemy][idx+1:]...)
		res.Captured = &Capture{Color: enemy, Cell: Cell{Row: p.Row, Col: p.Col}}
	}

	used := g.Dice
	g.Dice = 0

	if len(g.Pieces[enemy]) == 0 {
		g.Status = StatusFinished
		g.Winner = c
		g.BonusPending = false
		res.GameOver = true
		res.Winner = c
		res.NextTurn = g.Turn
		g.LastUpdate = time.Now()
		return res, nil
	}

	if grantsBonus(used, res.Captured != nil) {
		g.BonusPending = true
		res.BonusRoll = true
	} else {
		g.BonusPending = false
		g.Turn = enemy
	}
	res.NextTurn = g.Turn
	g.LastUpdate = time.Now()
	return res, nil
}

// grantsBonus is the canonical bonus-roll rule: a repeatable value keeps
// the turn unless the move captured.
func grantsBonus(diceValue int, captured bool) bool {
	return Repeatable(diceValue) && !captured
}

// ApplyMoveAt executes a move addressed by flat cell index instead of
// piece index.
func (g *Game) ApplyMoveAt(c Color, cellIndex int) (MoveResult, error) {
	if err := g.checkTurn(c); err != nil {
		return MoveResult{}, err
	}
	if cellIndex < 0 || cellIndex >= 4*g.BoardWidth {
		return MoveResult{}, ErrInvalidPiece
	}
	cell := CellFromIndex(cellIndex, g.BoardWidth)
	idx := g.PieceIndexAt(c, cell.Row, cell.Col)
	if idx < 0 {
		return MoveResult{}, ErrInvalidPiece
	}
	return g.ApplyMove(c, idx)
}

// Pass ends the turn without moving. Only legal when the dice has been
// rolled, nothing can move with it, and the value is not repeatable (a
// repeatable value with no moves must be re-rolled instead).
func (g *Game) Pass(c Color) error {
	if err := g.checkTurn(c); err != nil {
		return err
	}
	if g.Dice == 0 {
		return ErrDiceNotRolled
	}
	if len(LegalMoves(g, c)) > 0 {
		return ErrMovesStillAvailable
	}
	if Repeatable(g.Dice) {
		return ErrMustReroll
	}
	g.Turn = c.Opponent()
	g.Dice = 0
	g.BonusPending = false
	g.LastUpdate = time.Now()
	return nil
}

// Forfeit finishes the game awarding the win to the opponent.
func (g *Game) Forfeit(c Color) error {
	if g.Status != StatusActive {
		return ErrGameNotActive
	}
	g.Status = StatusFinished
	g.Winner = c.Opponent()
	g.Dice = 0
	g.BonusPending = false
	g.LastUpdate = time.Now()
	return nil
}
