package game

import "testing"

func newTestGame() *Game {
	return NewGame("g1", "alice", "bob", 7)
}

func ruleCode(t *testing.T, err error) Code {
	t.Helper()
	re, ok := AsRuleError(err)
	if !ok {
		t.Fatalf("expected a rule error, got %v", err)
	}
	return re.Code
}

func TestValidateActivation(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		steps    int
		wantCode Code
		wantDest Cell
	}{
		{name: "leading piece activates with a 1", index: 0, steps: 1, wantDest: Cell{1, 0}},
		{name: "inactive piece rejects other values", index: 0, steps: 2, wantCode: CodeActivationRequiresOne},
		{name: "activation into occupied cell", index: 6, steps: 1, wantCode: CodeOwnPieceCollision},
		{name: "index out of range", index: 7, steps: 1, wantCode: CodeInvalidPiece},
		{name: "negative index", index: -1, steps: 1, wantCode: CodeInvalidPiece},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame()
			mv, err := Validate(g, Red, tt.index, tt.steps)
			if tt.wantCode != "" {
				if got := ruleCode(t, err); got != tt.wantCode {
					t.Fatalf("code = %s, want %s", got, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if mv.Action != ActionActivate {
				t.Fatalf("action = %s, want %s", mv.Action, ActionActivate)
			}
			if mv.Destination != tt.wantDest {
				t.Fatalf("destination = %v, want %v", mv.Destination, tt.wantDest)
			}
		})
	}
}

func TestValidateFrozenPiece(t *testing.T) {
	g := newTestGame()
	// A red piece sits in blue's home row while a sibling is still
	// inactive at home.
	g.Pieces[Red] = []Piece{
		{Row: 3, Col: 2, Active: true, InEnemyTerritory: true},
		{Row: 0, Col: 0},
	}
	for steps := 1; steps <= 6; steps++ {
		_, err := Validate(g, Red, 0, steps)
		if got := ruleCode(t, err); got != CodePieceFrozen {
			t.Fatalf("steps %d: code = %s, want %s", steps, got, CodePieceFrozen)
		}
	}

	// Once every sibling is active the piece thaws.
	g.Pieces[Red][1].Active = true
	g.Pieces[Red][1].Row = 1
	if _, err := Validate(g, Red, 0, 1); err != nil {
		t.Fatalf("thawed piece rejected: %v", err)
	}
}

func TestValidateOwnPieceCollision(t *testing.T) {
	g := newTestGame()
	g.Pieces[Red] = []Piece{
		{Row: 1, Col: 0, Active: true},
		{Row: 1, Col: 2, Active: true},
	}
	_, err := Validate(g, Red, 0, 2)
	if got := ruleCode(t, err); got != CodeOwnPieceCollision {
		t.Fatalf("code = %s, want %s", got, CodeOwnPieceCollision)
	}
	// One step further is free.
	mv, err := Validate(g, Red, 0, 3)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if mv.Destination != (Cell{1, 3}) {
		t.Fatalf("destination = %v, want (1,3)", mv.Destination)
	}
}

func TestValidateLandingOnEnemyIsLegal(t *testing.T) {
	g := newTestGame()
	g.Pieces[Red] = []Piece{{Row: 1, Col: 0, Active: true}}
	g.Pieces[Blue] = []Piece{{Row: 1, Col: 3, Active: true}}
	mv, err := Validate(g, Red, 0, 3)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if mv.Destination != (Cell{1, 3}) {
		t.Fatalf("destination = %v, want (1,3)", mv.Destination)
	}
}

func TestLegalMoves(t *testing.T) {
	t.Run("empty before rolling", func(t *testing.T) {
		g := newTestGame()
		if moves := LegalMoves(g, Red); moves != nil {
			t.Fatalf("moves = %v, want none", moves)
		}
	})

	t.Run("no activation without a one", func(t *testing.T) {
		g := newTestGame()
		g.Dice = 3
		if moves := LegalMoves(g, Red); len(moves) != 0 {
			t.Fatalf("moves = %v, want none", moves)
		}
	})

	t.Run("fresh game with a one activates the lead piece", func(t *testing.T) {
		g := newTestGame()
		g.Dice = 1
		moves := LegalMoves(g, Red)
		if len(moves) != 1 {
			t.Fatalf("got %d moves, want 1: %v", len(moves), moves)
		}
		if moves[0].PieceIndex != 0 || moves[0].Action != ActionActivate {
			t.Fatalf("unexpected move %+v", moves[0])
		}
	})

	t.Run("frozen and collision pieces are excluded", func(t *testing.T) {
		g := newTestGame()
		g.Pieces[Red] = []Piece{
			{Row: 3, Col: 1, Active: true, InEnemyTerritory: true}, // frozen
			{Row: 0, Col: 5},                                      // inactive
			{Row: 1, Col: 1, Active: true},
		}
		g.Dice = 2
		moves := LegalMoves(g, Red)
		if len(moves) != 1 || moves[0].PieceIndex != 2 {
			t.Fatalf("moves = %v, want only piece 2", moves)
		}
	})
}
