package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newServer(h *Hub) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Serve(w, r, nil)
	}))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, got %d", n, h.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub(nil)
	srv := newServer(h)
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	waitForClients(t, h, 2)

	if n := h.Broadcast(Tick{Active: true, Remaining: 65, Display: "1:05", Urgent: true}); n != 2 {
		t.Fatalf("Expected broadcast to 2 clients, got %d", n)
	}

	for _, c := range []*websocket.Conn{a, b} {
		var got Tick
		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		if err := c.ReadJSON(&got); err != nil {
			t.Fatalf("Failed to read tick: %v", err)
		}
		if got.Display != "1:05" || !got.Urgent || got.Remaining != 65 {
			t.Errorf("Unexpected tick: %+v", got)
		}
	}
}

func TestHub_DropsClosedClients(t *testing.T) {
	h := NewHub(nil)
	srv := newServer(h)
	defer srv.Close()

	c := dial(t, srv)
	waitForClients(t, h, 1)

	c.Close()
	waitForClients(t, h, 0)

	if n := h.Broadcast(Tick{}); n != 0 {
		t.Errorf("Expected no recipients, got %d", n)
	}
}

func TestHub_FirstTick(t *testing.T) {
	h := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Serve(w, r, &Tick{Active: true, Display: "29:59"})
	}))
	defer srv.Close()

	c := dial(t, srv)
	var got Tick
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := c.ReadJSON(&got); err != nil {
		t.Fatalf("Failed to read first tick: %v", err)
	}
	if got.Display != "29:59" {
		t.Errorf("Expected first tick 29:59, got %+v", got)
	}
}

func TestHub_SlowClientDoesNotBlockOthers(t *testing.T) {
	h := NewHub(nil)
	srv := newServer(h)
	defer srv.Close()

	fast := dial(t, srv)
	waitForClients(t, h, 1)

	// a client whose queue is already full, as if its socket had stalled
	slow := &client{send: make(chan []byte, 1)}
	slow.send <- []byte("{}")
	h.mu.Lock()
	h.clients[slow] = true
	h.mu.Unlock()

	start := time.Now()
	if n := h.Broadcast(Tick{Display: "0:42"}); n != 1 {
		t.Fatalf("Expected broadcast to 1 client, got %d", n)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Broadcast took %v", elapsed)
	}
	if h.Clients() != 1 {
		t.Errorf("Expected the full client to be dropped, got %d clients", h.Clients())
	}

	var got Tick
	_ = fast.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := fast.ReadJSON(&got); err != nil {
		t.Fatalf("Failed to read tick: %v", err)
	}
	if got.Display != "0:42" {
		t.Errorf("Unexpected tick: %+v", got)
	}
}
