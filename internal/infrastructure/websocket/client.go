package websocket

import (
	"sync"

	"github.com/gorilla/websocket"

	"upcyclehub/pkg/logger"
)

const sendBufferSize = 256

// Client wraps one live socket connection. A client starts out pending
// (no identity) and is bound to a user identity by the router on its
// first valid auth event.
type Client struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
	userID int64
	authed bool
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// bind records the identity for this connection. Identity is immutable
// once set; bind on an authenticated client is a no-op.
func (c *Client) bind(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authed {
		return false
	}
	c.userID = userID
	c.authed = true
	return true
}

// Identity returns the bound user ID and whether the connection has
// authenticated yet.
func (c *Client) Identity() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID, c.authed
}

// Enqueue queues a frame for delivery. A client whose send buffer is full
// is considered dead and closed, mirroring how the write pump treats a
// broken socket.
func (c *Client) Enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		logger.Warn("websocket: send buffer full for user %d, closing connection", c.userID)
		c.closed = true
		close(c.send)
		return false
	}
}

// Close shuts down the outbound side; the write pump drains, sends a
// close frame and closes the socket, which in turn ends the read pump.
// Safe to call more than once and from any goroutine.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) sendError(message string) {
	c.Enqueue(encodeErrorFrame(message))
}

// ReadPump reads frames from the socket and feeds them to the router one
// at a time, so events for a single connection are handled to completion
// in arrival order. It runs until the transport closes or errors, then
// performs registry cleanup.
func (c *Client) ReadPump(router *ChatRouter) {
	defer func() {
		router.HandleDisconnect(c)
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug("websocket: read error: %v", err)
			}
			break
		}
		router.HandleFrame(c, data)
	}
}

// WritePump writes queued frames to the socket until the send channel is
// closed, then sends a close frame.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		payload, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Debug("websocket: write error: %v", err)
			return
		}
	}
}
