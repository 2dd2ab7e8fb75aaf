package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"gridbowl/internal/metrics"
)

const (
	// MaxWSConnectionsTotal caps spectator connections to the event
	// stream, adapted from the teacher's DoS-protection constant
	// (internal/api/websocket.go) down from a live-stream audience size
	// to a handful of dashboard/replay viewers.
	MaxWSConnectionsTotal = 100
	MaxWSConnectionsPerIP = 5
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return IsAllowedOrigin(r.Header.Get("Origin"), nil)
	},
}

type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// Hub fans the engine's event log out to every subscribed WebSocket
// client, adapted from the teacher's WebSocketHub (internal/api/
// websocket.go) which did the same for the real-time combat broadcast —
// here it carries one JSON message per resolve call instead of a 10Hz
// state tick.
type Hub struct {
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex
	limiter    *WebSocketRateLimiter
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	h := &Hub{
		clients:    make(map[*websocket.Conn]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		limiter:    NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			count := len(h.clients)
			h.mu.Unlock()
			metrics.WSConnectionsActive.Set(float64(count))
			h.log.Info().Str("ip", client.ip).Int("clients", count).Msg("spectator connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				h.limiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
			}
			count := len(h.clients)
			h.mu.Unlock()
			metrics.WSConnectionsActive.Set(float64(count))

		case message := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast enqueues an {event, data} message for every connected client.
func (h *Hub) Broadcast(event string, data interface{}) {
	msg := map[string]interface{}{"event": event, "data": data}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

// ClientCount reports how many spectators are currently subscribed.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades a spectator connection and registers it with
// the hub, enforcing the same total/per-IP caps the teacher used to stop
// a stream audience from exhausting file descriptors.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	h.mu.RLock()
	total := len(h.clients)
	h.mu.RUnlock()
	if total >= MaxWSConnectionsTotal {
		metrics.RecordConnectionRejected("ws_total_limit")
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}
	if !h.limiter.Allow(ip) {
		metrics.RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.limiter.Release(ip)
		return
	}

	client := &wsClient{conn: conn, ip: ip}
	h.register <- client

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
