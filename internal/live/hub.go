// Package live pushes countdown ticks to open console pages over websockets.
package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 20 * time.Second
	sendBuffer = 8
)

// Tick is one countdown update as sent to the page.
type Tick struct {
	Active    bool   `json:"active"`
	Remaining int    `json:"remaining_seconds"`
	Display   string `json:"display"`
	Urgent    bool   `json:"urgent"`
	Pending   int    `json:"pending"`
}

// client is one open page. The hub queues messages on send; only the
// client's write loop touches the connection.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]bool
}

// NewHub accepts websocket upgrades from the given origins; an empty list
// only allows same-host pages.
func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{clients: make(map[*client]bool)}
	if len(allowedOrigins) > 0 {
		allowed := make(map[string]bool, len(allowedOrigins))
		for _, o := range allowedOrigins {
			allowed[o] = true
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin] || origin == "http://"+r.Host || origin == "https://"+r.Host
		}
	}
	return h
}

// Broadcast queues t for every client and returns how many accepted it.
// A client whose queue is full is dropped instead of waited on.
func (h *Hub) Broadcast(t Tick) int {
	b, err := json.Marshal(t)
	if err != nil {
		slog.Error("encode tick", "error", err)
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.clients {
		select {
		case c.send <- b:
			n++
		default:
			slog.Debug("ws client too slow, dropping")
			h.unregisterLocked(c)
		}
	}
	return n
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve upgrades the request and keeps the connection registered until the
// page goes away. first, when non-nil, is sent right after the upgrade.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, first *Tick) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if first != nil {
		if b, err := json.Marshal(first); err == nil {
			c.send <- b
		}
	}

	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()
	slog.Debug("ws connected", "clients", total)

	go c.writeLoop()

	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.unregisterLocked(c)
	total = len(h.clients)
	h.mu.Unlock()
	_ = conn.Close()
	slog.Debug("ws disconnected", "clients", total)
}

// unregisterLocked removes c and closes its queue, which ends its write
// loop. Callers hold h.mu.
func (h *Hub) unregisterLocked(c *client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (c *client) writeLoop() {
	t := time.NewTicker(pingPeriod)
	defer func() {
		t.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case b, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				slog.Debug("ws write failed", "error", err)
				return
			}
		case <-t.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
