package http

import (
	"github.com/gin-gonic/gin"

	"tab-server/internal/api/ws"
	"tab-server/internal/match"
	"tab-server/internal/store"
)

func NewRouter(m *match.Manager, s store.Store, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	// WebSocket stream of game state updates
	r.GET("/ws", hub.HandleWS)

	// --- ACCOUNT ENDPOINTS ---
	r.POST("/api/register", RegisterHandler(s))
	r.GET("/api/ranking", RankingHandler(s))

	// --- GAME ENDPOINTS ---
	r.POST("/api/join", JoinHandler(m))
	r.POST("/api/leave", LeaveHandler(m))
	r.POST("/api/roll", RollHandler(m))
	r.POST("/api/notify", MoveHandler(m))
	r.POST("/api/pass", PassHandler(m))
	r.GET("/api/update", UpdateHandler(m))
	r.POST("/api/room", RoomHandler(m))

	return r
}
