package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gameplatform/pkg/logger"
	"gameplatform/services/api-gateway/internal/client"
	"gameplatform/services/api-gateway/internal/config"
	"gameplatform/services/api-gateway/internal/middleware"
	"gameplatform/services/api-gateway/internal/security"
	handlers "gameplatform/services/api-gateway/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 1. Config and logger
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	lg, err := logger.New(cfg.AppEnv, "api-gateway")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer lg.Sync()
	if cfg.JWTAccessSecret == "" {
		lg.Fatal("JWT_ACCESS_SECRET is required")
	}
	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Redis for rate limiting; the limiter fails open when it is down
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.REDIS_ADDR,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		lg.Warn("redis unavailable, rate limiting disabled", "addr", cfg.REDIS_ADDR, "error", err)
	} else {
		lg.Info("connected to redis", "addr", cfg.REDIS_ADDR)
	}
	rateLimiter := middleware.NewRateLimiter(rdb)

	// 3. gRPC client for the path service
	pathClient, err := client.NewPathClient(cfg.PathSvcUrl)
	if err != nil {
		lg.Fatal("failed to connect to path service", "addr", cfg.PathSvcUrl, "error", err)
	}
	defer pathClient.Close()

	// 4. Handlers and router
	pathHandler := handlers.NewPathHandler(pathClient.Client, lg.With("component", "http"))
	router := handlers.NewRouter(pathHandler, rateLimiter, security.NewTokenValidator(cfg.JWTAccessSecret), cfg.Origins(), lg)

	// 5. HTTP server
	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           http.TimeoutHandler(router, cfg.RequestTimeout, `{"error":"request timed out"}`),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		lg.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	lg.Info("api gateway running", "port", cfg.Port, "path_service", cfg.PathSvcUrl)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatal("failed to run server", "error", err)
	}
}
