package ws

import (
	"encoding/json"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 64
)

type Client struct {
	UserID int64
	Role   domain.Role
	Conn   *websocket.Conn
	Send   chan []byte

	hub *Hub
}

func NewClient(u *domain.User, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		UserID: u.ID,
		Role:   u.Role,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		hub:    hub,
	}
}

// wants reports whether the event is visible to this client. Managers and
// admins see everything; employees only tasks assigned to them.
func (c *Client) wants(ev domain.TaskEvent) bool {
	if c.Role != domain.RoleEmployee {
		return true
	}
	return ev.Task != nil && ev.Task.AssignedTo != nil && *ev.Task.AssignedTo == c.UserID
}

// Run attaches the client to the hub and blocks until the connection goes
// away.
func (c *Client) Run() {
	c.attach()
	go c.writePump()
	c.readPump()
}

// attach queues the ready frame and then registers. Send is fresh and
// buffered here, so the ready frame is always first and never blocks.
func (c *Client) attach() {
	ready, _ := json.Marshal(Message{Type: MsgReady})
	c.Send <- ready
	c.hub.Register(c)
}

// The client never sends anything meaningful; reading keeps pongs and
// close frames flowing.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "user_id", c.UserID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("ws write error", "user_id", c.UserID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
