package notifications

import (
	"context"
	"time"

	"skillswap/internal/observability"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	// pingPeriod must stay below pongWait or idle peers time out.
	pingPeriod = (pongWait * 9) / 10

	// Chat frames are short; anything larger is a misbehaving peer.
	maxFrameSize = 16384

	sendBufferSize = 256
)

// owner is what a Client reports to when its connection ends.
type owner interface {
	UnregisterClient(c *Client)
	Name() string
}

// Client is one live chat connection. The relay writes to Send; the write
// pump drains it onto the socket.
type Client struct {
	// ID tags log lines for this connection.
	ID string
	// UserID is 0 for guests.
	UserID      uint
	ConnectedAt time.Time
	Send        chan []byte

	owner   owner
	conn    *websocket.Conn
	onFrame func(*Client, []byte)
}

func newClient(o owner, conn *websocket.Conn, userID uint, onFrame func(*Client, []byte)) *Client {
	return &Client{
		ID:          uuid.NewString()[:8],
		UserID:      userID,
		ConnectedAt: time.Now(),
		Send:        make(chan []byte, sendBufferSize),
		owner:       o,
		conn:        conn,
		onFrame:     onFrame,
	}
}

// readLoop hands every inbound frame to onFrame until the peer goes away,
// then unregisters the client.
func (c *Client) readLoop() {
	defer c.owner.UnregisterClient(c)

	c.conn.SetReadLimit(maxFrameSize)
	c.extendRead()
	c.conn.SetPongHandler(func(string) error {
		c.extendRead()
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				observability.NewRelayLogger(c.owner.Name()).Disconnected(context.Background(), c.UserID, c.ID, err.Error(), c.ConnectedAt)
			}
			return
		}
		if c.onFrame != nil {
			c.onFrame(c, frame)
		}
	}
}

// writeLoop drains Send onto the socket and keeps the peer alive with
// pings. A closed Send ends the connection with a close frame.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			if !ok {
				_ = c.write(websocket.CloseMessage, nil)
				return
			}
			if err := c.write(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(kind int, payload []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(kind, payload)
}

func (c *Client) extendRead() {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

// TrySend queues frame without blocking. Frames for a full or closed
// buffer are dropped and counted.
func (c *Client) TrySend(frame []byte) (sent bool) {
	defer func() {
		if recover() != nil {
			observability.WebSocketBackpressureDrops.WithLabelValues(c.owner.Name(), "closed").Inc()
			sent = false
		}
	}()

	select {
	case c.Send <- frame:
		return true
	default:
		observability.WebSocketBackpressureDrops.WithLabelValues(c.owner.Name(), "full").Inc()
		return false
	}
}
