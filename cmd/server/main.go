package main

import (
	"github.com/sirupsen/logrus"

	httpapi "tab-server/internal/api/http"
	"tab-server/internal/api/ws"
	"tab-server/internal/config"
	"tab-server/internal/match"
	"tab-server/internal/store"
)

// @title Tâb Game Server API
// @version 1.0
// @description Online two-player Tâb board game backend (Go + Gin)
// @BasePath /
func main() {
	cfg := config.Load()

	var st store.Store
	if cfg.DataDir == "" {
		st = store.NewMemoryStore()
		logrus.Info("using in-memory store")
	} else {
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			logrus.WithError(err).Fatal("open data dir")
		}
		st = fs
		logrus.WithField("dir", cfg.DataDir).Info("using file-backed store")
	}

	hub := ws.NewHub()
	m := match.NewManager(st, cfg, hub)
	hub.SnapshotFunc = func(gameID string) (interface{}, bool) {
		snap, err := m.Snapshot(gameID, "")
		if err != nil {
			return nil, false
		}
		return snap, true
	}
	r := httpapi.NewRouter(m, st, hub)

	logrus.WithField("addr", cfg.HTTPAddr).Info("listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logrus.Fatal(err)
	}
}
