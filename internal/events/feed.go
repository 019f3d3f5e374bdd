package events

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/skyops/flowgrid/internal/ctxlog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is consumed by local tooling; origin checks belong to
	// whatever fronts this in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Feed exposes the bus over a websocket endpoint at /progress. Each
// connected client gets its own subscription and receives one JSON frame
// per status transition.
type Feed struct {
	bus *Bus
}

// NewFeed wraps a bus for websocket consumption.
func NewFeed(bus *Bus) *Feed {
	return &Feed{bus: bus}
}

// Handler returns the http.Handler serving the feed.
func (f *Feed) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/progress", func(w http.ResponseWriter, r *http.Request) {
		f.serveClient(ctx, w, r)
	})
	return mux
}

// Serve runs the feed server until ctx is cancelled.
func (f *Feed) Serve(ctx context.Context, addr string) error {
	logger := ctxlog.FromContext(ctx)
	srv := &http.Server{Addr: addr, Handler: f.Handler(ctx)}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	logger.Info("📡 Progress feed listening", "address", addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (f *Feed) serveClient(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(ctx)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Feed upgrade failed.", "remote_addr", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	logger.Debug("Feed client connected.", "remote_addr", r.RemoteAddr)

	events, cancel := f.bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debug("Feed client dropped.", "remote_addr", r.RemoteAddr, "error", err)
				return
			}
		}
	}
}
