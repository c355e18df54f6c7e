package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/coderhafiz/Murajiah-sub001/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// validChannel accepts session:<id>, user:<id> and broadcast.
func validChannel(channel string) bool {
	if channel == "broadcast" {
		return true
	}
	for _, prefix := range []string{"session:", "user:"} {
		if rest, ok := strings.CutPrefix(channel, prefix); ok {
			_, err := strconv.ParseUint(rest, 10, 64)
			return err == nil
		}
	}
	return false
}

// HandleWebSocket godoc
// @Summary      WebSocket connection for live updates
// @Description  Subscribe to a channel: session:{id} for game state, user:{id} or broadcast for notifications
// @Tags         websocket
// @Param        channel path string true "Channel name"
// @Router       /ws/{channel} [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	channel := c.Param("channel")
	if !validChannel(channel) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid channel"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(channel, conn)
	defer h.hub.RemoveConnection(channel, conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
