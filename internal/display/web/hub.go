package web

import (
	"sync"

	"github.com/cespare/xxhash"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
)

// hub tracks the connected viewers, the last sent frame and the keys held
// down by each viewer.
type hub struct {
	setKeys func(keys [input.NumKeys]bool)

	mu        sync.Mutex
	clients   map[*client]struct{}
	last      []byte
	lastHash  uint64
	hasFrames bool
}

func newHub(setKeys func(keys [input.NumKeys]bool)) *hub {
	return &hub{
		setKeys: setKeys,
		clients: map[*client]struct{}{},
	}
}

// broadcast sends the frame to all viewers unless it equals the previous one.
// Slow viewers skip frames instead of blocking the emulation.
func (h *hub) broadcast(frame display.Frame) {
	data := frame.Bytes()
	hash := xxhash.Sum64(data)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hasFrames && hash == h.lastHash {
		return
	}
	h.last = data
	h.lastHash = hash
	h.hasFrames = true

	for c := range h.clients {
		c.queue(data)
	}
}

func (h *hub) register(conn wsConn) *client {
	c := newClient(h, conn)

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.hasFrames {
		c.queue(h.last)
	}
	h.mu.Unlock()
	return c
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
	h.updateKeys()
}

func (h *hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
	h.updateKeys()
}

// updateKeys combines the keys held by all viewers. The hub lock is held
// until the keys are set so that an older combination never overwrites a
// newer one.
func (h *hub) updateKeys() {
	var keys [input.NumKeys]bool

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		held := c.heldKeys()
		for key, down := range held {
			keys[key] = keys[key] || down
		}
	}
	h.setKeys(keys)
}

func (h *hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
