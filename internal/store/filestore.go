package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tab-server/internal/game"
)

// FileStore persists every record category to a pretty-printed JSON file
// under the data directory (users.json, games.json, queue.json,
// rooms.json). All reads are served from memory; each save rewrites the
// affected file through a temp-file rename.
type FileStore struct {
	*MemoryStore
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	fs := &FileStore{MemoryStore: NewMemoryStore(), dir: dir}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *FileStore) load() error {
	if err := loadJSON(f.path("games.json"), &f.games); err != nil {
		return err
	}
	if err := loadJSON(f.path("users.json"), &f.users); err != nil {
		return err
	}
	if err := loadJSON(f.path("queue.json"), &f.queues); err != nil {
		return err
	}
	return loadJSON(f.path("rooms.json"), &f.rooms)
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.dir, name)
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func saveJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func (f *FileStore) saveGames() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return saveJSON(f.path("games.json"), f.games)
}

func (f *FileStore) SaveGame(g *game.Game) error {
	if err := f.MemoryStore.SaveGame(g); err != nil {
		return err
	}
	return f.saveGames()
}

func (f *FileStore) DeleteGame(id string) error {
	if err := f.MemoryStore.DeleteGame(id); err != nil {
		return err
	}
	return f.saveGames()
}

func (f *FileStore) SaveUser(u *User) error {
	if err := f.MemoryStore.SaveUser(u); err != nil {
		return err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return saveJSON(f.path("users.json"), f.users)
}

func (f *FileStore) saveQueues() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return saveJSON(f.path("queue.json"), f.queues)
}

func (f *FileStore) SaveQueue(groupKey string, q []QueueEntry) error {
	if err := f.MemoryStore.SaveQueue(groupKey, q); err != nil {
		return err
	}
	return f.saveQueues()
}

func (f *FileStore) RemoveQueued(username string) error {
	if err := f.MemoryStore.RemoveQueued(username); err != nil {
		return err
	}
	return f.saveQueues()
}

func (f *FileStore) SaveRoom(r *Room) error {
	if err := f.MemoryStore.SaveRoom(r); err != nil {
		return err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return saveJSON(f.path("rooms.json"), f.rooms)
}
