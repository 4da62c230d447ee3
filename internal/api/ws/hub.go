package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub fans game state updates out to every websocket subscribed to a
// game. It knows nothing about the rules engine; the match manager feeds
// it snapshots through Broadcast.
type Hub struct {
	mu    sync.RWMutex
	games map[string]map[*websocket.Conn]struct{}

	// SnapshotFunc, when set, supplies the state pushed to a subscriber
	// right after it connects.
	SnapshotFunc func(gameID string) (interface{}, bool)
}

func NewHub() *Hub {
	return &Hub{games: make(map[string]map[*websocket.Conn]struct{})}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// HandleWS upgrades the request and subscribes the connection to the
// game's update stream. A disconnecting client only releases its own
// connection; game state is untouched.
func (h *Hub) HandleWS(c *gin.Context) {
	gameID := c.Query("gameId")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing gameId"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	// Push the current state before the connection becomes visible to
	// Broadcast. The connection only ever has one writer: this handler
	// now, the hub (under its lock) once registered.
	if h.SnapshotFunc != nil {
		if snap, ok := h.SnapshotFunc(gameID); ok {
			if err := conn.WriteJSON(map[string]interface{}{"action": "state", "data": snap}); err != nil {
				conn.Close()
				return
			}
		}
	}

	h.mu.Lock()
	if _, ok := h.games[gameID]; !ok {
		h.games[gameID] = make(map[*websocket.Conn]struct{})
	}
	h.games[gameID][conn] = struct{}{}
	h.mu.Unlock()

	logrus.WithField("game", gameID).Debug("subscriber connected")

	defer func() {
		h.mu.Lock()
		delete(h.games[gameID], conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	// Drain incoming frames until the client goes away; the stream is
	// one-directional.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends {action, data} to every subscriber of the game.
// Connections that fail to write are evicted.
func (h *Hub) Broadcast(gameID, action string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.games[gameID]
	if !ok {
		return
	}
	message := map[string]interface{}{
		"action": action,
		"data":   data,
	}
	for conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			logrus.WithError(err).Debug("drop dead subscriber")
			conn.Close()
			delete(conns, conn)
		}
	}
}

// CloseGame ends the stream for all subscribers once the final snapshot
// has been broadcast.
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.games[gameID] {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game finished"))
		conn.Close()
	}
	delete(h.games, gameID)
}
