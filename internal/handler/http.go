// Package handler exposes the game over HTTP. The session id lives in a
// cookie so the browser client stays stateless; all game state is server
// side.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"westeros-realty/internal/models"
	"westeros-realty/internal/service"
)

const (
	sessionCookieName = "session_id"
	cookieMaxAge      = 24 * 60 * 60
)

type gameRequest struct {
	Choice string `json:"choice"`
}

// GameHandler serves the /api/game and /api/reset endpoints.
type GameHandler struct {
	games  service.GameService
	logger *zap.Logger
}

func NewGameHandler(games service.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		games:  games,
		logger: logger.Named("GameHandler"),
	}
}

func (h *GameHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	api.POST("/game", h.HandleGame)
	api.POST("/reset", h.HandleReset)
}

// HandleGame starts a new game when no choice is supplied (or no session
// exists) and otherwise resolves the chosen option of the pending segment.
func (h *GameHandler) HandleGame(c *gin.Context) {
	var req gameRequest
	// An empty or absent body means "start a new game".
	_ = c.ShouldBindJSON(&req)

	sessionID, err := c.Cookie(sessionCookieName)
	if req.Choice == "" || err != nil || sessionID == "" {
		h.startNewGame(c)
		return
	}

	choiceIndex, err := strconv.Atoi(req.Choice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid choice"})
		return
	}

	result, err := h.games.MakeChoice(c.Request.Context(), sessionID, choiceIndex)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "success", "game_state": result})
	case errors.Is(err, models.ErrSessionNotFound), errors.Is(err, models.ErrInvalidRecord):
		// A stale or corrupt session falls through to a fresh game, the
		// same as arriving without one.
		h.logger.Info("Session unusable, starting new game",
			zap.String("sessionID", sessionID),
			zap.Error(err),
		)
		h.startNewGame(c)
	case errors.Is(err, models.ErrInvalidChoice):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid choice"})
	default:
		h.logger.Error("Failed to process choice",
			zap.String("sessionID", sessionID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
	}
}

// HandleReset discards the current session.
func (h *GameHandler) HandleReset(c *gin.Context) {
	sessionID, err := c.Cookie(sessionCookieName)
	if err == nil && sessionID != "" {
		if err := h.games.ResetGame(c.Request.Context(), sessionID); err != nil {
			h.logger.Error("Failed to reset game",
				zap.String("sessionID", sessionID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
			return
		}
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Game reset successfully"})
}

// startNewGame mints a fresh session id so stale state can never bleed
// into the new game.
func (h *GameHandler) startNewGame(c *gin.Context) {
	sessionID := uuid.NewString()

	result, err := h.games.StartGame(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to start game",
			zap.String("sessionID", sessionID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}

	c.SetCookie(sessionCookieName, sessionID, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "success", "game_state": result})
}
