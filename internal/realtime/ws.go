package realtime

import (
	"net/http"
	"time"

	"glamour-be/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser admin clients connect cross-origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one connected admin session.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Event
}

// ServeWS upgrades the request and attaches the client to the hub.
// Auth is enforced by middleware before this handler runs.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromCtx(r.Context()).Error("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan Event, 8),
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames; it exists to observe close and
// pong messages.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
