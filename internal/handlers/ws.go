package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"growthlog/internal/notify"
)

// writeWait bounds each outbound write; a stalled peer surfaces as a send
// error and gets dropped by the hub instead of blocking broadcasters.
const writeWait = 10 * time.Second

type WSHandler struct {
	hub      *notify.Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *notify.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Auth happens via the session cookie before the upgrade; the
			// CORS layer already constrains origins for the rest of the API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// wsListener adapts a websocket connection to the hub's Listener interface.
// gorilla connections allow one concurrent writer, hence the mutex.
type wsListener struct {
	mu        sync.Mutex
	conn      *websocket.Conn
	writeWait time.Duration
}

func (l *wsListener) Send(event any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.conn.SetWriteDeadline(time.Now().Add(l.writeWait)); err != nil {
		return err
	}
	return l.conn.WriteJSON(event)
}

// Connect upgrades the request and joins the notification hub until the
// client goes away.
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	l := &wsListener{conn: conn, writeWait: writeWait}
	h.hub.Add(l)
	defer func() {
		h.hub.Remove(l)
		conn.Close()
	}()

	// Drain client frames; the first read error means the listener is gone.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
