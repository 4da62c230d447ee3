package ws

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newTestServer(h *Hub) *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", h.HandleWS)
	return httptest.NewServer(r)
}

func dialGame(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?gameId=" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

// The initial state push and hub broadcasts must never write to the same
// connection concurrently: the push happens before the connection is
// registered, so broadcasts fired while it is in flight cannot touch it.
func TestInitialPushDoesNotRaceBroadcast(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup
	h.SnapshotFunc = func(gameID string) (interface{}, bool) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h.Broadcast(gameID, "move", gin.H{"seq": i})
			}
		}()
		return gin.H{"turn": "red"}, true
	}
	srv := newTestServer(h)
	defer srv.Close()

	conn := dialGame(t, srv, "g1")
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first struct {
		Action string `json:"action"`
	}
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial frame: %v", err)
	}
	if first.Action != "state" {
		t.Fatalf("first frame action = %q, want state", first.Action)
	}
	wg.Wait()
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	h := NewHub()
	srv := newTestServer(h)
	defer srv.Close()

	conn := dialGame(t, srv, "g1")
	defer conn.Close()

	// The subscription registers asynchronously with the dial; keep
	// broadcasting until a frame arrives.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				h.Broadcast("g1", "move", gin.H{"ok": true})
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Action string `json:"action"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if msg.Action != "move" {
		t.Fatalf("action = %q, want move", msg.Action)
	}

	// Ending the game closes the stream cleanly.
	h.CloseGame("g1")
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Fatalf("stream ended with %v, want normal closure", err)
			}
			return
		}
	}
}
