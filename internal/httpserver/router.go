package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tv-gateway/internal/health"
	"tv-gateway/internal/todos"
	"tv-gateway/internal/trading"
)

type RouterDeps struct {
	TradingHandler *trading.Handler
	TodoHandler    *todos.Handler
	HealthHandler  *health.Handler
	ClockWS        http.Handler
	Logger         *zap.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS middleware for charting-tool webhooks fired from the browser
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Use(RequestLogger(d.Logger))
	r.Use(SecurityHeaders)
	r.Use(RateLimitMiddleware)

	r.Get("/health", d.HealthHandler.Health)

	r.Route("/todoitems", func(r chi.Router) {
		r.Get("/", d.TodoHandler.List)
		r.Get("/complete", d.TodoHandler.ListComplete)
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			d.TodoHandler.Get(w, r, chi.URLParam(r, "id"))
		})
		r.Post("/", d.TodoHandler.Create)
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			d.TodoHandler.Update(w, r, chi.URLParam(r, "id"))
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			d.TodoHandler.Delete(w, r, chi.URLParam(r, "id"))
		})
	})

	r.Route("/apialpaca", func(r chi.Router) {
		r.Get("/getclock", d.TradingHandler.Clock)
		r.Get("/getaccount", d.TradingHandler.Account)
		r.Get("/listassets/{exchange}", func(w http.ResponseWriter, r *http.Request) {
			d.TradingHandler.ListAssets(w, r, chi.URLParam(r, "exchange"))
		})
		r.Post("/buy", d.TradingHandler.Buy)
		r.Post("/sell/{symbol}", func(w http.ResponseWriter, r *http.Request) {
			d.TradingHandler.Sell(w, r, chi.URLParam(r, "symbol"))
		})
		r.Delete("/cancel/{orderId}", func(w http.ResponseWriter, r *http.Request) {
			d.TradingHandler.Cancel(w, r, chi.URLParam(r, "orderId"))
		})
		r.Get("/clock/ws", d.ClockWS.ServeHTTP)
	})

	return r
}
