package handlers

import (
	"net/http"
	"strconv"

	"github.com/coderhafiz/Murajiah-sub001/internal/services"
	"github.com/coderhafiz/Murajiah-sub001/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SessionHandler struct {
	gameService *services.GameService
	hub         *ws.Hub
}

func NewSessionHandler(gameService *services.GameService, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{gameService: gameService, hub: hub}
}

type CreateGameRequest struct {
	QuizID    uint `json:"quiz_id" binding:"required" example:"1"`
	IsPreview bool `json:"is_preview" example:"false"`
}

// CreateGame godoc
// @Summary      Create a game session
// @Description  Start a new game for a quiz, generates a 6-digit join PIN
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateGameRequest true "Game data"
// @Success      201 {object} GameSession
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/games [post]
func (h *SessionHandler) CreateGame(c *gin.Context) {
	hostID := c.GetUint("user_id")

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.gameService.CreateGame(req.QuizID, hostID, req.IsPreview)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListActiveGames godoc
// @Summary      List active games
// @Description  Get the host's waiting and active games, previews excluded
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} services.GameSummary
// @Router       /api/v1/games [get]
func (h *SessionHandler) ListActiveGames(c *gin.Context) {
	hostID := c.GetUint("user_id")

	games, err := h.gameService.ListActiveGames(hostID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, games)
}

// ActiveGameCount godoc
// @Summary      Count active games
// @Description  Number of the host's waiting and active games, previews excluded
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]int
// @Router       /api/v1/games/active-count [get]
func (h *SessionHandler) ActiveGameCount(c *gin.Context) {
	hostID := c.GetUint("user_id")

	count, err := h.gameService.CountActiveGames(hostID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetGame godoc
// @Summary      Get game session
// @Description  Get a game session with its quiz
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} GameSession
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/games/{id} [get]
func (h *SessionHandler) GetGame(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	session, err := h.gameService.GetGame(uint(sessionID))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

// StartGame godoc
// @Summary      Start a game
// @Description  Move a waiting game to active; host only
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} GameSession
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/games/{id}/start [post]
func (h *SessionHandler) StartGame(c *gin.Context) {
	hostID := c.GetUint("user_id")
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	session, err := h.gameService.StartGame(uint(sessionID), hostID)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.hub.Broadcast(sessionChannel(session.ID), ws.Message{Type: "started", Data: session}); err != nil {
		logrus.Warnf("ws: start broadcast failed: %v", err)
	}

	c.JSON(http.StatusOK, session)
}

// EndGame godoc
// @Summary      End a game
// @Description  Move a game to finished; host or moderator only. Idempotent.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} GameSession
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/games/{id}/end [post]
func (h *SessionHandler) EndGame(c *gin.Context) {
	callerID := c.GetUint("user_id")
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	session, err := h.gameService.EndGame(uint(sessionID), callerID)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.hub.Broadcast(sessionChannel(session.ID), ws.Message{Type: "finished", Data: session}); err != nil {
		logrus.Warnf("ws: end broadcast failed: %v", err)
	}

	c.JSON(http.StatusOK, session)
}

func sessionChannel(sessionID uint) string {
	return "session:" + strconv.FormatUint(uint64(sessionID), 10)
}
