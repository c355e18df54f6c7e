package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans messages out to websocket clients grouped by channel. Channels
// are free-form strings: "session:<id>" for live game state, "user:<id>"
// for targeted notifications and "broadcast" for everyone.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(channel string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*websocket.Conn]bool)
	}
	h.channels[channel][conn] = true
	logrus.WithField("channel", channel).Debugf("ws: client connected (total: %d)", len(h.channels[channel]))
}

func (h *Hub) RemoveConnection(channel string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.channels[channel]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.channels, channel)
		}
		logrus.WithField("channel", channel).Debug("ws: client disconnected")
	}
}

func (h *Hub) Broadcast(channel string, message Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("ws: marshal error: %v", err)
		return err
	}

	// Full write lock: a failed write drops the connection from the map,
	// and concurrent writers on a single connection are not allowed by
	// the websocket library either. Broadcasts come from both request
	// goroutines and the outbox worker, so they must serialize.
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.channels[channel]
	if !ok {
		return nil
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logrus.Warnf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.channels, channel)
	}
	return nil
}
