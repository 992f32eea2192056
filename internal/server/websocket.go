package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Local development server only
	},
}

// reloadHub tracks connected browsers and pushes reload messages. Writes to
// a connection are serialized with a per-connection mutex; broadcasts are
// throttled so a burst of file events produces one reload, not a storm.
type reloadHub struct {
	logger      arbor.ILogger
	mu          sync.RWMutex
	clients     map[*websocket.Conn]bool
	clientMutex map[*websocket.Conn]*sync.Mutex
	throttler   *rate.Limiter
}

func newReloadHub(throttle time.Duration, logger arbor.ILogger) *reloadHub {
	return &reloadHub{
		logger:      logger,
		clients:     make(map[*websocket.Conn]bool),
		clientMutex: make(map[*websocket.Conn]*sync.Mutex),
		throttler:   rate.NewLimiter(rate.Every(throttle), 1),
	}
}

// handleConnection upgrades the request and keeps the connection registered
// until the client goes away.
func (h *reloadHub) handleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.clientMutex[conn] = &sync.Mutex{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Int("clients", total).Msg("WebSocket client connected")

	// Drain reads until the client disconnects; the hub never expects
	// inbound messages.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcastReload tells every connected browser to reload, subject to the
// throttle.
func (h *reloadHub) broadcastReload() {
	if !h.throttler.Allow() {
		h.logger.Debug().Msg("Reload broadcast throttled")
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	mutexes := make([]*sync.Mutex, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
		mutexes = append(mutexes, h.clientMutex[conn])
	}
	h.mu.RUnlock()

	for i, conn := range conns {
		mutexes[i].Lock()
		err := conn.WriteMessage(websocket.TextMessage, []byte("reload"))
		mutexes[i].Unlock()

		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to send reload to client")
			h.remove(conn)
		}
	}

	h.logger.Debug().Int("clients", len(conns)).Msg("Reload broadcast sent")
}

func (h *reloadHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		delete(h.clientMutex, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// closeAll disconnects every client during shutdown.
func (h *reloadHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]bool)
	h.clientMutex = make(map[*websocket.Conn]*sync.Mutex)
}
