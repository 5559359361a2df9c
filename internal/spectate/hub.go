// Package spectate broadcasts live game snapshots to websocket clients.
// The game driver publishes after every tick; spectators only read.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/snake-tui/internal/games/snake"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

// View is the JSON form of a snapshot sent to spectators.
type View struct {
	Round      int      `json:"round"`
	Tick       uint64   `json:"tick"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Snake      [][2]int `json:"snake"`
	Dir        string   `json:"dir"`
	Food       [2]int   `json:"food"`
	Score      int      `json:"score"`
	Best       int      `json:"best"`
	IntervalMS int64    `json:"interval_ms"`
	State      string   `json:"state"`
}

// ViewOf converts a snapshot for the wire.
func ViewOf(s snake.Snapshot) View {
	v := View{
		Round:      s.Round,
		Tick:       s.Tick,
		Width:      s.Width,
		Height:     s.Height,
		Snake:      make([][2]int, len(s.Segments)),
		Dir:        s.Dir.String(),
		Food:       [2]int{s.Food.X, s.Food.Y},
		Score:      s.Score,
		Best:       s.Best,
		IntervalMS: s.Interval.Milliseconds(),
		State:      string(s.State),
	}
	for i, c := range s.Segments {
		v.Snake[i] = [2]int{c.X, c.Y}
	}
	return v
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is an http.Handler that upgrades spectators to websocket and fans
// out published snapshots. Clients that fall behind are dropped.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
}

// NewHub creates a hub. A nil logger uses the charm default logger.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
		clients:  make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the connection and streams snapshots until the
// spectator disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectator upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("spectator connected", "remote", r.RemoteAddr, "spectators", count)

	go h.writeLoop(c)
	h.readLoop(c)

	h.remove(c)
	h.logger.Info("spectator disconnected", "remote", r.RemoteAddr)
}

// readLoop discards incoming messages and returns when the peer goes away.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("spectator read ended", "err", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// remove unregisters c and closes its send queue. Safe to call twice.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Publish sends s to every connected spectator and keeps it for
// spectators that connect later.
func (h *Hub) Publish(s snake.Snapshot) {
	data, err := json.Marshal(ViewOf(s))
	if err != nil {
		h.logger.Error("cannot encode snapshot", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow spectator", "remote", c.conn.RemoteAddr())
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every spectator and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
