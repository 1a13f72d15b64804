package stream

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"tv-gateway/internal/broker"
)

type clockMessage struct {
	Type      string        `json:"type"`
	Clock     *broker.Clock `json:"clock,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp int64         `json:"ts"`
}

// ClockWS pushes the broker's market clock to each connected client on a
// fixed interval. State is connection-local; nothing is shared or cached.
type ClockWS struct {
	origin   string
	gw       broker.Gateway
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewClockWS(origin string, gw broker.Gateway, interval time.Duration) *ClockWS {
	return &ClockWS{
		origin:   origin,
		gw:       gw,
		interval: interval,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return allowOrigin(r, origin) }},
	}
}

func (h *ClockWS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	for {
		select {
		case <-ticker.C:
			msg := clockMessage{Type: "clock", Timestamp: time.Now().UTC().Unix()}
			clock, err := h.gw.GetClock(r.Context())
			if err != nil {
				msg.Type = "error"
				msg.Error = err.Error()
			} else {
				msg.Clock = &clock
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func allowOrigin(r *http.Request, origin string) bool {
	if origin == "*" {
		return true
	}
	return strings.EqualFold(r.Header.Get("Origin"), origin)
}
