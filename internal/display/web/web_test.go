package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/assert"
)

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for !condition() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func testFrame(x uint8) display.Frame {
	var fb display.Framebuffer
	fb.Draw(x, 0, []byte{0x80})
	return fb.Frame()
}

func TestIndexPage(t *testing.T) {
	b := New(display.Settings{})
	server := httptest.NewServer(b.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "new WebSocket")
}

func TestFrameStreaming(t *testing.T) {
	b := New(display.Settings{})
	server := httptest.NewServer(b.Handler())
	defer server.Close()

	first := testFrame(0)
	b.Present(first)

	conn := dial(t, server)
	waitFor(t, func() bool { return b.hub.clientCount() == 1 })

	// the viewer receives the last frame on connect
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	typ, data, err := conn.ReadMessage()
	assert.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, typ)
	assert.True(t, bytes.Equal(first.Bytes(), data))

	// an unchanged frame is not sent again
	b.Present(first)
	second := testFrame(9)
	b.Present(second)

	_, data, err = conn.ReadMessage()
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(second.Bytes(), data))
}

func TestViewerKeys(t *testing.T) {
	b := New(display.Settings{})
	server := httptest.NewServer(b.Handler())
	defer server.Close()

	conn := dial(t, server)
	other := dial(t, server)
	waitFor(t, func() bool { return b.hub.clientCount() == 2 })

	assert.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{msgKeyDown, 0xA}))
	waitFor(t, func() bool { return b.IsKeyPressed(0xA) })

	assert.NoError(t, other.WriteMessage(websocket.BinaryMessage, []byte{msgKeyDown, 0xA}))
	assert.NoError(t, other.WriteMessage(websocket.BinaryMessage, []byte{msgKeyDown, 0x7}))
	waitFor(t, func() bool { return b.IsKeyPressed(0x7) })

	assert.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{msgKeyUp, 0xA}))
	assert.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{msgKeyDown, 0x3}))
	waitFor(t, func() bool { return b.IsKeyPressed(0x3) })
	assert.True(t, b.IsKeyPressed(0xA))

	// keys of a disconnected viewer are released
	_ = other.Close()
	waitFor(t, func() bool { return !b.IsKeyPressed(0xA) })
	assert.False(t, b.IsKeyPressed(0x7))
	assert.True(t, b.IsKeyPressed(0x3))
}

func TestClient_HandleMessage(t *testing.T) {
	tests := []struct {
		name    string
		message []byte
		changed bool
	}{
		{"key down", []byte{msgKeyDown, 5}, true},
		{"repeated key down", []byte{msgKeyDown, 5}, false},
		{"key up", []byte{msgKeyUp, 5}, true},
		{"invalid key", []byte{msgKeyDown, 16}, false},
		{"unknown type", []byte{9, 1}, false},
		{"short", []byte{msgKeyDown}, false},
	}

	c := newClient(newHub(nil), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.changed, c.handleMessage(tt.message))
		})
	}
}

func TestRun(t *testing.T) {
	b := New(display.Settings{WebAddr: "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- b.Run(ctx) }()

	cancel()
	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("web display did not stop")
	}
}

func TestRun_InvalidAddress(t *testing.T) {
	b := New(display.Settings{WebAddr: "invalid:address:1"})
	err := b.Run(context.Background())
	assert.ErrorContains(t, err, "listening on")
}
