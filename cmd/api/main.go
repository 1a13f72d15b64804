package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tv-gateway/internal/broker"
	"tv-gateway/internal/config"
	"tv-gateway/internal/db"
	"tv-gateway/internal/health"
	"tv-gateway/internal/httpserver"
	"tv-gateway/internal/stream"
	"tv-gateway/internal/todos"
	"tv-gateway/internal/trading"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	todoStore := todos.NewStore(pool)
	if err := todoStore.EnsureSchema(ctx); err != nil {
		logger.Fatal("schema", zap.Error(err))
	}

	gw := broker.NewClient(cfg.AlpacaBaseURL, cfg.AlpacaKeyID, cfg.AlpacaSecretKey, cfg.BrokerTimeout)
	tradingSvc := trading.NewService(gw, cfg.AssetListStyle, cfg.AccountDetail)
	router := httpserver.NewRouter(httpserver.RouterDeps{
		TradingHandler: trading.NewHandler(tradingSvc),
		TodoHandler:    todos.NewHandler(todoStore),
		HealthHandler:  health.NewHandler(pool, gw, time.Now().UTC()),
		ClockWS:        stream.NewClockWS(cfg.WSOrigin, gw, cfg.ClockPushInterval),
		Logger:         logger,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
}
