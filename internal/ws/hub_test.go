package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestConns upgrades n websocket connections against a throwaway server
// and returns the server-side halves plus the client-side halves.
func dialTestConns(t *testing.T, n int) (server, client []*websocket.Conn) {
	t.Helper()

	connCh := make(chan *websocket.Conn, n)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	for i := 0; i < n; i++ {
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		if resp != nil {
			resp.Body.Close()
		}
		client = append(client, conn)
		server = append(server, <-connCh)
	}
	return server, client
}

func TestBroadcastDeliversToChannel(t *testing.T) {
	hub := NewHub()
	server, client := dialTestConns(t, 2)

	hub.AddConnection("session:1", server[0])
	hub.AddConnection("user:7", server[1])

	require.NoError(t, hub.Broadcast("session:1", Message{Type: "started"}))

	_, payload, err := client[0].ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"started"`)

	// The other channel stays quiet; broadcasting to it reaches only its
	// own subscriber.
	require.NoError(t, hub.Broadcast("user:7", Message{Type: "notification"}))
	_, payload, err = client[1].ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"notification"`)
}

func TestBroadcastConcurrentWithDeadConnections(t *testing.T) {
	hub := NewHub()
	server, _ := dialTestConns(t, 4)

	// Closed server-side connections make every write fail, which is the
	// path that drops connections from the channel map mid-broadcast.
	for _, conn := range server {
		conn.Close()
		hub.AddConnection("session:1", conn)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast("session:1", Message{Type: "state"})
		}()
	}
	wg.Wait()

	// All dead connections were pruned and the empty channel released.
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.NotContains(t, hub.channels, "session:1")
}

func TestBroadcastUnknownChannelIsNoop(t *testing.T) {
	hub := NewHub()
	assert.NoError(t, hub.Broadcast("session:999", Message{Type: "state"}))
}
