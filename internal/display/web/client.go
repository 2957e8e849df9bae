package web

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/retroenv/retrochip8/internal/input"
)

// Messages sent by viewers, each followed by the key value.
const (
	msgKeyDown = 1
	msgKeyUp   = 2
)

const (
	sendQueueSize  = 4
	writeTimeout   = 2 * time.Second
	maxMessageSize = 64
)

// wsConn is the part of a websocket connection used by a client.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	Close() error
}

var _ wsConn = (*websocket.Conn)(nil)

type client struct {
	hub  *hub
	conn wsConn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}

	mu   sync.Mutex
	held [input.NumKeys]bool
}

func newClient(h *hub, conn wsConn) *client {
	return &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
}

// queue adds a frame to the send queue, dropping it if the queue is full.
func (c *client) queue(data []byte) {
	select {
	case <-c.done:
	case c.send <- data:
	default:
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump processes key messages until the connection fails.
func (c *client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if c.handleMessage(message) {
			c.hub.updateKeys()
		}
	}
}

// handleMessage updates the held keys and returns whether they changed.
func (c *client) handleMessage(message []byte) bool {
	if len(message) != 2 || message[1] >= input.NumKeys {
		return false
	}

	var down bool
	switch message[0] {
	case msgKeyDown:
		down = true
	case msgKeyUp:
	default:
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held[message[1]] == down {
		return false
	}
	c.held[message[1]] = down
	return true
}

func (c *client) heldKeys() [input.NumKeys]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held
}

// writePump sends queued frames until the client is closed.
func (c *client) writePump() {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				c.close()
				return
			}
		}
	}
}
