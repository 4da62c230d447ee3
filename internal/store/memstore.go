package store

import (
	"sync"

	"tab-server/internal/game"
)

// MemoryStore keeps all records in process memory. It is the default
// backend for tests and for running without a data directory.
type MemoryStore struct {
	mu     sync.RWMutex
	games  map[string]*game.Game
	users  map[string]*User
	queues map[string][]QueueEntry
	rooms  map[string]*Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:  map[string]*game.Game{},
		users:  map[string]*User{},
		queues: map[string][]QueueEntry{},
		rooms:  map[string]*Room{},
	}
}

// cloneGame deep-copies a record so readers never alias the stored state.
func cloneGame(g *game.Game) *game.Game {
	cp := *g
	cp.Players = make(map[game.Color]string, len(g.Players))
	for c, n := range g.Players {
		cp.Players[c] = n
	}
	cp.Pieces = make(map[game.Color][]game.Piece, len(g.Pieces))
	for c, ps := range g.Pieces {
		cp.Pieces[c] = append([]game.Piece(nil), ps...)
	}
	return &cp
}

func (m *MemoryStore) Game(id string) (*game.Game, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, false, nil
	}
	return cloneGame(g), true, nil
}

func (m *MemoryStore) Games() ([]*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*game.Game, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, cloneGame(g))
	}
	return out, nil
}

func (m *MemoryStore) SaveGame(g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = cloneGame(g)
	return nil
}

func (m *MemoryStore) DeleteGame(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *MemoryStore) User(username string) (*User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	if !ok {
		return nil, false, nil
	}
	cp := *u
	return &cp, true, nil
}

func (m *MemoryStore) SaveUser(u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.Username] = &cp
	return nil
}

func (m *MemoryStore) Users() ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryStore) Queue(groupKey string) ([]QueueEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]QueueEntry(nil), m.queues[groupKey]...), nil
}

func (m *MemoryStore) SaveQueue(groupKey string, q []QueueEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[groupKey] = append([]QueueEntry(nil), q...)
	return nil
}

func (m *MemoryStore) RemoveQueued(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, q := range m.queues {
		kept := q[:0]
		for _, e := range q {
			if e.Username != username {
				kept = append(kept, e)
			}
		}
		m.queues[key] = kept
	}
	return nil
}

func (m *MemoryStore) Room(key string) (*Room, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[key]
	if !ok {
		return nil, false, nil
	}
	cp := *r
	return &cp, true, nil
}

func (m *MemoryStore) SaveRoom(r *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.rooms[r.Key] = &cp
	return nil
}
