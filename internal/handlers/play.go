package handlers

import (
	"errors"
	"net/http"

	"github.com/coderhafiz/Murajiah-sub001/internal/services"
	"github.com/coderhafiz/Murajiah-sub001/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PlayHandler struct {
	gameService *services.GameService
	hub         *ws.Hub
}

func NewPlayHandler(gameService *services.GameService, hub *ws.Hub) *PlayHandler {
	return &PlayHandler{gameService: gameService, hub: hub}
}

type JoinRequest struct {
	Pin        string `json:"pin" binding:"required,len=6,numeric" example:"042137"`
	Nickname   string `json:"nickname" binding:"required,min=1,max=100" example:"sara"`
	GuestToken string `json:"guest_token" example:""`
}

// Join godoc
// @Summary      Join a game by PIN
// @Description  Resolve a 6-digit PIN to a running game and enrol as a participant
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        request body JoinRequest true "Join data"
// @Success      200 {object} services.JoinResult
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/play/join [post]
func (h *PlayHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.gameService.JoinGame(req.Pin, req.Nickname, req.GuestToken)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "no such PIN or game already ended"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if !result.IsRejoin {
		err := h.hub.Broadcast(sessionChannel(result.SessionID), ws.Message{
			Type: "player_joined",
			Data: result.Participant,
		})
		if err != nil {
			logrus.Warnf("ws: join broadcast failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, result)
}
