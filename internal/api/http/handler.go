package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tab-server/internal/game"
	"tab-server/internal/match"
	"tab-server/internal/store"
)

// respondErr relays rules violations as ordinary payloads with their code
// (the client decides how to present them) and everything else as a
// generic server fault.
func respondErr(c *gin.Context, err error) {
	if re, ok := game.AsRuleError(err); ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": string(re.Code)})
		return
	}
	logrus.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
}

// @Summary Register or authenticate a player
// @Tags Account
// @Accept json
// @Produce json
// @Param request body http.RegisterRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Router /api/register [post]
func RegisterHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.BindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		u, err := store.Register(s, req.Username, req.Password)
		if errors.Is(err, store.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"username": u.Username,
			"points":   u.Points,
			"wins":     u.Wins,
			"losses":   u.Losses,
		})
	}
}

// @Summary Top-ten leaderboard
// @Tags Account
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/ranking [get]
func RankingHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ranking, err := store.Ranking(s)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "ranking": ranking})
	}
}

// @Summary Join the matchmaking queue
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.JoinRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/join [post]
func JoinHandler(m *match.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRequest
		if err := c.BindJSON(&req); err != nil || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
			return
		}
		res, err := m.Join(req.Username, req.GroupKey, req.BoardWidth)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"status":   res.Status,
			"position": res.Position,
			"gameId":   res.GameID,
			"color":    res.Color,
			"opponent": res.Opponent,
		})
	}
}

// @Summary Roll the throwing sticks
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.GameRequest true "Game and player"
// @Success 200 {object} map[string]interface{}
// @Router /api/roll [post]
func RollHandler(m *match.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GameRequest
		if err := c.BindJSON(&req); err != nil || req.GameID == "" || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gameId and username required"})
			return
		}
		res, err := m.Roll(req.GameID, req.Username)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"value":      res.Value,
			"repeatable": res.Repeatable,
			"sticks":     res.Sticks,
			"noMoves":    res.NoMoves,
			"mustReroll": res.MustReroll,
		})
	}
}

// @Summary Move a piece
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.MoveRequest true "Move data"
// @Success 200 {object} map[string]interface{}
// @Router /api/notify [post]
func MoveHandler(m *match.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.BindJSON(&req); err != nil || req.GameID == "" || req.Username == "" || req.CellIndex == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gameId, username and cellIndex required"})
			return
		}
		res, err := m.Move(req.GameID, req.Username, *req.CellIndex)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"piece":     res.Piece,
			"captured":  res.Captured,
			"gameOver":  res.GameOver,
			"winner":    res.Winner,
			"bonusRoll": res.BonusRoll,
			"nextTurn":  res.NextTurn,
		})
	}
}

// @Summary Pass the turn
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.GameRequest true "Game and player"
// @Success 200 {object} map[string]interface{}
// @Router /api/pass [post]
func PassHandler(m *match.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GameRequest
		if err := c.BindJSON(&req); err != nil || req.GameID == "" || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gameId and username required"})
			return
		}
		next, err := m.Pass(req.GameID, req.Username)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "nextTurn": next})
	}
}

// @Summary Forfeit the game or leave the queue
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.GameRequest true "Game and player"
// @Success 200 {object} map[string]interface{}
// @Router /api/leave [post]
func LeaveHandler(m *match.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GameRequest
		if err := c.BindJSON(&req); err != nil || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
			return
		}
		res, err := m.Leave(req.GameID, req.Username)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": res.Message, "winner": res.Winner})
	}
}

// @Summary Poll the current game state
// @Tags Game
// @Produce json
// @Param gameId query string true "Game ID"
// @Param username query string true "Player"
// @Success 200 {object} map[string]interface{}
// @Router /api/update [get]
func UpdateHandler(m *match.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Query("gameId")
		username := c.Query("username")
		if gameID == "" || username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gameId and username required"})
			return
		}
		snap, err := m.Snapshot(gameID, username)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "game": snap})
	}
}

// @Summary Create or join a private room
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.RoomRequest true "Room password"
// @Success 200 {object} map[string]interface{}
// @Router /api/room [post]
func RoomHandler(m *match.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RoomRequest
		if err := c.BindJSON(&req); err != nil || req.Username == "" || req.RoomPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and roomPassword required"})
			return
		}
		res, err := m.Room(req.Username, req.RoomPassword)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"waiting":  res.Waiting,
			"roomKey":  res.RoomKey,
			"gameId":   res.GameID,
			"color":    res.Color,
			"opponent": res.Opponent,
			"status":   res.Status,
		})
	}
}
