package match

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tab-server/internal/config"
	"tab-server/internal/game"
	"tab-server/internal/store"
)

// Broadcaster pushes state updates to subscribed clients.
type Broadcaster interface {
	Broadcast(gameID, action string, data interface{})
	CloseGame(gameID string)
}

// Manager pairs queued players into games and serializes every mutation
// of a game record behind a per-game lock.
type Manager struct {
	store store.Store
	cfg   config.Config
	hub   Broadcaster

	queueMu sync.Mutex
	roomMu  sync.Mutex

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewManager(s store.Store, cfg config.Config, hub Broadcaster) *Manager {
	return &Manager{
		store: s,
		cfg:   cfg,
		hub:   hub,
		locks: map[string]*sync.Mutex{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandSource replaces the dice source; tests use it for determinism.
func (m *Manager) SetRandSource(src rand.Source) {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	m.rng = rand.New(src)
}

func (m *Manager) lockFor(gameID string) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	l, ok := m.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[gameID] = l
	}
	return l
}

// QueueResult is the outcome of a join: either a queue position or a
// freshly matched game.
type QueueResult struct {
	Status   string     `json:"status"` // "waiting" or "matched"
	Position int        `json:"position,omitempty"`
	GameID   string     `json:"gameId,omitempty"`
	Color    game.Color `json:"color,omitempty"`
	Opponent string     `json:"opponent,omitempty"`
}

// Join puts the player into the group's FIFO queue or pairs them
// immediately. An exact board-width match is preferred; failing that the
// longest-waiting entry is taken and the game uses that entry's width.
// The waiting player becomes blue, the joiner red.
func (m *Manager) Join(username, groupKey string, boardWidth int) (*QueueResult, error) {
	if boardWidth <= 0 {
		boardWidth = m.cfg.BoardSize
	}

	// A player already seated in an active game is pointed back at it.
	if g, err := m.activeGameOf(username); err != nil {
		return nil, err
	} else if g != nil {
		color, _ := g.PlayerColor(username)
		return &QueueResult{
			Status:   "matched",
			GameID:   g.ID,
			Color:    color,
			Opponent: g.Players[color.Opponent()],
		}, nil
	}

	m.queueMu.Lock()
	defer m.queueMu.Unlock()

	q, err := m.store.Queue(groupKey)
	if err != nil {
		return nil, fmt.Errorf("load queue: %w", err)
	}
	for _, e := range q {
		if e.Username == username {
			return nil, game.ErrAlreadyInQueue
		}
	}

	pick := -1
	for i, e := range q {
		if e.BoardWidth == boardWidth {
			pick = i
			break
		}
	}
	if pick < 0 && len(q) > 0 {
		// No exact width match: pair with the longest waiter and play
		// on their board.
		pick = 0
		boardWidth = q[0].BoardWidth
	}

	if pick < 0 {
		q = append(q, store.QueueEntry{
			Username:   username,
			BoardWidth: boardWidth,
			JoinedAt:   time.Now(),
		})
		if err := m.store.SaveQueue(groupKey, q); err != nil {
			return nil, fmt.Errorf("save queue: %w", err)
		}
		return &QueueResult{Status: "waiting", Position: len(q)}, nil
	}

	waiter := q[pick]
	q = append(q[:pick], q[pick+1:]...)
	if err := m.store.SaveQueue(groupKey, q); err != nil {
		return nil, fmt.Errorf("save queue: %w", err)
	}

	g := game.NewGame(uuid.NewString(), waiter.Username, username, boardWidth)
	if err := m.store.SaveGame(g); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"game": g.ID, "blue": waiter.Username, "red": username, "width": boardWidth,
	}).Info("players matched")

	return &QueueResult{
		Status:   "matched",
		GameID:   g.ID,
		Color:    game.Red,
		Opponent: waiter.Username,
	}, nil
}

func (m *Manager) activeGameOf(username string) (*game.Game, error) {
	games, err := m.store.Games()
	if err != nil {
		return nil, fmt.Errorf("scan games: %w", err)
	}
	for _, g := range games {
		if g.Status != game.StatusActive {
			continue
		}
		if _, ok := g.PlayerColor(username); ok {
			return g, nil
		}
	}
	return nil, nil
}

// withGame runs fn against the stored record under the game's lock and
// persists the mutated record afterwards.
func (m *Manager) withGame(gameID, username string, fn func(g *game.Game, c game.Color) error) (*game.Game, error) {
	l := m.lockFor(gameID)
	l.Lock()
	defer l.Unlock()

	g, ok, err := m.store.Game(gameID)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	if !ok {
		return nil, game.ErrGameNotFound
	}
	color, ok := g.PlayerColor(username)
	if !ok {
		return nil, game.ErrNotYourTurn
	}
	if err := fn(g, color); err != nil {
		return nil, err
	}
	if err := m.store.SaveGame(g); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return g, nil
}

// RollResult is a dice throw plus what it obliges the roller to do next.
type RollResult struct {
	game.Roll
	NoMoves    bool `json:"noMoves"`
	MustReroll bool `json:"mustReroll"`
}

// Roll throws the sticks for the player and broadcasts the new state.
func (m *Manager) Roll(gameID, username string) (*RollResult, error) {
	var res RollResult
	g, err := m.withGame(gameID, username, func(g *game.Game, c game.Color) error {
		m.rngMu.Lock()
		r, err := g.Roll(c, m.rng)
		m.rngMu.Unlock()
		if err != nil {
			return err
		}
		res.Roll = r
		res.NoMoves = len(game.LegalMoves(g, c)) == 0
		res.MustReroll = res.NoMoves && r.Repeatable
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.broadcastState(g, "roll")
	return &res, nil
}

// Move executes the move of the piece standing on the flat cell index and
// broadcasts the result. Finished games update both players' rankings.
func (m *Manager) Move(gameID, username string, cellIndex int) (*game.MoveResult, error) {
	var res game.MoveResult
	g, err := m.withGame(gameID, username, func(g *game.Game, c game.Color) error {
		r, err := g.ApplyMoveAt(c, cellIndex)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.GameOver {
		m.finishGame(g)
	} else {
		m.broadcastState(g, "move")
	}
	return &res, nil
}

// Pass ends the turn when no move is possible with the rolled value.
func (m *Manager) Pass(gameID, username string) (game.Color, error) {
	g, err := m.withGame(gameID, username, func(g *game.Game, c game.Color) error {
		return g.Pass(c)
	})
	if err != nil {
		return "", err
	}
	m.broadcastState(g, "pass")
	return g.Turn, nil
}

// LeaveResult reports what leaving did.
type LeaveResult struct {
	Message string     `json:"message"`
	Winner  game.Color `json:"winner,omitempty"`
}

// Leave forfeits an active game (the opponent wins) or removes the player
// from the matchmaking queue when they are not in a game.
func (m *Manager) Leave(gameID, username string) (*LeaveResult, error) {
	if gameID != "" {
		_, ok, err := m.store.Game(gameID)
		if err != nil {
			return nil, fmt.Errorf("load game: %w", err)
		}
		if ok {
			// The status check must run under the game's lock: a move
			// can finish the game between a read here and the forfeit.
			finished := false
			g, err := m.withGame(gameID, username, func(g *game.Game, c game.Color) error {
				if g.Status != game.StatusActive {
					finished = true
					return nil
				}
				return g.Forfeit(c)
			})
			if err != nil {
				return nil, err
			}
			if finished {
				return &LeaveResult{Message: "game already finished"}, nil
			}
			m.finishGame(g)
			return &LeaveResult{Message: "game forfeited", Winner: g.Winner}, nil
		}
	}
	if err := m.store.RemoveQueued(username); err != nil {
		return nil, fmt.Errorf("leave queue: %w", err)
	}
	return &LeaveResult{Message: "removed from queue"}, nil
}

// finishGame records the result on both rankings and tears the stream
// down after the final snapshot.
func (m *Manager) finishGame(g *game.Game) {
	winner := g.Players[g.Winner]
	loser := g.Players[g.Winner.Opponent()]
	if err := store.RecordResult(m.store, winner, loser); err != nil {
		logrus.WithError(err).WithField("game", g.ID).Error("record result")
	}
	logrus.WithFields(logrus.Fields{"game": g.ID, "winner": winner}).Info("game finished")
	m.broadcastState(g, "game_over")
	if m.hub != nil {
		m.hub.CloseGame(g.ID)
	}
}

func (m *Manager) broadcastState(g *game.Game, action string) {
	if m.hub == nil {
		return
	}
	m.hub.Broadcast(g.ID, action, viewOf(g))
}
