package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	clientSend = 16
)

// Hub pushes change frames to connected admin screens over websockets.
type Hub struct {
	upgrader websocket.Upgrader
	subs     []*Subscription

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
}

type wsClient struct {
	conn *websocket.Conn
	send chan Change
}

// NewHub subscribes to the given tables on bus. An empty origins list or a
// "*" entry accepts any origin.
func NewHub(bus *Bus, origins []string, tables ...Table) (*Hub, error) {
	h := &Hub{clients: make(map[*wsClient]struct{})}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(origins)}

	for _, t := range tables {
		sub, err := bus.Subscribe(t, h.broadcast)
		if err != nil {
			h.Close()
			return nil, err
		}
		h.subs = append(h.subs, sub)
	}
	return h, nil
}

func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		if _, ok := allowed["*"]; ok {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &wsClient{conn: conn, send: make(chan Change, clientSend)}
	if !h.register(c) {
		conn.Close()
		return
	}
	go c.writeLoop()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(c)
}

func (h *Hub) register(c *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// broadcast drops the frame for clients whose buffer is full; the next
// change triggers a re-read anyway.
func (h *Hub) broadcast(ch Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ch:
		default:
			zap.L().Debug("websocket client lagging, dropping change", zap.String("table", string(ch.Table)))
		}
	}
}

func (c *wsClient) writeLoop() {
	defer c.conn.Close()
	for ch := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ch); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close releases the bus subscriptions and disconnects every client.
func (h *Hub) Close() {
	for _, s := range h.subs {
		s.Unsubscribe()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
