package health

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tv-gateway/internal/broker"
	"tv-gateway/internal/httputil"
)

const checkTimeout = 2 * time.Second

type Handler struct {
	pool      *pgxpool.Pool
	gw        broker.Gateway
	startedAt time.Time
}

func NewHandler(pool *pgxpool.Pool, gw broker.Gateway, startedAt time.Time) *Handler {
	start := startedAt.UTC()
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &Handler{pool: pool, gw: gw, startedAt: start}
}

type healthResponse struct {
	Status    string      `json:"status"`
	Timestamp string      `json:"timestamp"`
	UptimeSec int64       `json:"uptime_sec"`
	Uptime    string      `json:"uptime"`
	Database  checkResult `json:"database"`
	Broker    checkResult `json:"broker"`
}

type checkResult struct {
	Reachable bool   `json:"reachable"`
	PingMs    int64  `json:"ping_ms"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	resp := healthResponse{
		Status:    "ok",
		Timestamp: now.Format(time.RFC3339),
		UptimeSec: int64(now.Sub(h.startedAt).Seconds()),
		Uptime:    now.Sub(h.startedAt).Round(time.Second).String(),
		Database:  h.checkDatabase(r.Context()),
		Broker:    h.checkBroker(r.Context()),
	}
	status := http.StatusOK
	if !resp.Database.Reachable || !resp.Broker.Reachable {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, resp)
}

func (h *Handler) checkDatabase(ctx context.Context) checkResult {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	start := time.Now()
	if err := h.pool.Ping(ctx); err != nil {
		return checkResult{Reachable: false, PingMs: time.Since(start).Milliseconds(), Error: err.Error()}
	}
	return checkResult{Reachable: true, PingMs: time.Since(start).Milliseconds()}
}

func (h *Handler) checkBroker(ctx context.Context) checkResult {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	start := time.Now()
	if _, err := h.gw.GetClock(ctx); err != nil {
		return checkResult{Reachable: false, PingMs: time.Since(start).Milliseconds(), Error: err.Error()}
	}
	return checkResult{Reachable: true, PingMs: time.Since(start).Milliseconds()}
}
