package source

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/danmaku/logging"
	"github.com/lixenwraith/danmaku/status"
)

// Connection states published under status.KeySource
const (
	StateConnecting = "connecting"
	StateConnected  = "connected"
	StateRetrying   = "retrying"
	StateClosed     = "closed"
)

// WebSocket is a chat client that reconnects with exponential backoff
type WebSocket struct {
	URL        string
	MinBackoff time.Duration
	MaxBackoff time.Duration

	dialer     *websocket.Dialer
	state      *status.AtomicString
	reconnects *atomic.Int64
}

// NewWebSocket publishes connection state into reg; nil reg keeps it private
func NewWebSocket(url string, reg *status.Registry) *WebSocket {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &WebSocket{
		URL:        url,
		MinBackoff: 500 * time.Millisecond,
		MaxBackoff: 30 * time.Second,
		dialer:     &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		state:      reg.Strings.Get(status.KeySource),
		reconnects: reg.Ints.Get(status.KeyReconnects),
	}
}

// Run streams arrivals to out until ctx is cancelled, reconnecting on any failure
// It only returns ctx's error
func (w *WebSocket) Run(ctx context.Context, out chan<- Arrival) error {
	defer w.state.Store(StateClosed)
	backoff := w.MinBackoff

	for {
		w.state.Store(StateConnecting)
		conn, _, err := w.dialer.DialContext(ctx, w.URL, nil)
		if err == nil {
			backoff = w.MinBackoff
			w.state.Store(StateConnected)
			logging.Logger().Info("chat source connected", "url", w.URL)

			err = w.read(ctx, conn, out)
			conn.Close()
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		w.state.Store(StateRetrying)
		w.reconnects.Add(1)
		logging.Logger().Warn("chat source disconnected", "url", w.URL, "err", err, "retry", backoff)

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
		backoff = min(backoff*2, w.MaxBackoff)
	}
}

// read pumps text frames until the connection fails or ctx is cancelled
func (w *WebSocket) read(ctx context.Context, conn *websocket.Conn, out chan<- Arrival) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		if kind != websocket.TextMessage {
			continue
		}

		a, err := Decode(data)
		if err != nil {
			logging.Logger().Warn("skipping chat frame", "err", err)
			continue
		}
		if a.Text == "" {
			continue
		}

		select {
		case out <- a:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
