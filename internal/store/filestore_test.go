package store

import (
	"os"
	"path/filepath"
	"testing"

	"tab-server/internal/game"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	g := game.NewGame("g1", "alice", "bob", 7)
	g.Dice = 3
	if err := fs.SaveGame(g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if _, err := Register(fs, "alice", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := fs.SaveQueue("casual", []QueueEntry{{Username: "carol", BoardWidth: 9}}); err != nil {
		t.Fatalf("SaveQueue: %v", err)
	}
	if err := fs.SaveRoom(&Room{Key: "room_x", Creator: "dave", Status: "waiting"}); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}

	// A fresh store over the same directory sees everything.
	fs2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	got, ok, err := fs2.Game("g1")
	if err != nil || !ok {
		t.Fatalf("Game: ok=%v err=%v", ok, err)
	}
	if got.Dice != 3 || got.Players[game.Blue] != "alice" || len(got.Pieces[game.Red]) != 7 {
		t.Fatalf("reloaded game = %+v", got)
	}

	u, ok, err := fs2.User("alice")
	if err != nil || !ok {
		t.Fatalf("User: ok=%v err=%v", ok, err)
	}
	if u.PasswordHash != HashPassword("pw") {
		t.Fatalf("reloaded user = %+v", u)
	}

	q, err := fs2.Queue("casual")
	if err != nil || len(q) != 1 || q[0].Username != "carol" {
		t.Fatalf("reloaded queue = %v err=%v", q, err)
	}

	r, ok, err := fs2.Room("room_x")
	if err != nil || !ok || r.Creator != "dave" {
		t.Fatalf("reloaded room = %+v ok=%v err=%v", r, ok, err)
	}
}

func TestFileStoreDeleteGame(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := fs.SaveGame(game.NewGame("g1", "alice", "bob", 7)); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if err := fs.DeleteGame("g1"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}

	fs2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, ok, _ := fs2.Game("g1"); ok {
		t.Fatal("deleted game survived the reload")
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := fs.SaveGame(game.NewGame("g1", "alice", "bob", 7)); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	tmps, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(tmps) != 0 {
		t.Fatalf("temp files left behind: %v", tmps)
	}
	if _, err := os.Stat(filepath.Join(dir, "games.json")); err != nil {
		t.Fatalf("games.json missing: %v", err)
	}
}

func TestMemoryStoreHandsOutCopies(t *testing.T) {
	s := NewMemoryStore()
	g := game.NewGame("g1", "alice", "bob", 7)
	if err := s.SaveGame(g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	first, _, _ := s.Game("g1")
	first.Dice = 6
	first.Pieces[game.Red][0].Active = true

	second, _, _ := s.Game("g1")
	if second.Dice != 0 || second.Pieces[game.Red][0].Active {
		t.Fatalf("stored record aliased by a read: %+v", second)
	}
}
