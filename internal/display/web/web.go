// Package web provides a display backend that streams frames to browsers
// over websockets and accepts key presses from them.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrogolib/log"
)

// Name of the backend.
const Name = "web"

// DefaultAddress is used when no listen address is configured.
const DefaultAddress = "127.0.0.1:8064"

const shutdownTimeout = 5 * time.Second

//go:embed index.html
var indexPage []byte

var upgrader = websocket.Upgrader{
	ReadBufferSize:  64,
	WriteBufferSize: 512,
}

func init() {
	display.Register(Name, 30, func(settings display.Settings) (display.Backend, error) {
		return New(settings), nil
	})
}

// Backend serves a viewer page and streams all presented frames to the
// connected viewers.
type Backend struct {
	input.Keypad

	address string
	logger  *log.Logger
	hub     *hub
}

// New returns a web backend.
func New(settings display.Settings) *Backend {
	address := settings.WebAddr
	if address == "" {
		address = DefaultAddress
	}

	b := &Backend{
		address: address,
		logger:  settings.Logger,
	}
	b.hub = newHub(b.Set)
	return b
}

// Present sends the frame to all connected viewers.
func (b *Backend) Present(frame display.Frame) {
	b.hub.broadcast(frame)
}

// Handler returns the HTTP handler serving the viewer page on / and the
// websocket stream on /ws.
func (b *Backend) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexPage)
	})
	mux.HandleFunc("GET /ws", b.serveWebsocket)
	return mux
}

// Run serves viewers until the context is cancelled.
func (b *Backend) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", b.address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", b.address, err)
	}

	server := &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if b.logger != nil {
		b.logger.Info("Web display listening", log.String("url", "http://"+listener.Addr().String()))
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.Serve(listener)
	}()

	select {
	case err := <-errs:
		b.hub.closeAll()
		return fmt.Errorf("serving web display: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		b.hub.closeAll()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutting down web display: %w", err)
		}
		return nil
	}
}

func (b *Backend) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if b.logger != nil {
			b.logger.Warn("Upgrading viewer connection failed", log.Err(err))
		}
		return
	}

	c := b.hub.register(conn)
	if b.logger != nil {
		b.logger.Debug("Viewer connected", log.String("remote", r.RemoteAddr))
	}

	go c.writePump()
	c.readPump()

	b.hub.unregister(c)
	if b.logger != nil {
		b.logger.Debug("Viewer disconnected", log.String("remote", r.RemoteAddr))
	}
}
