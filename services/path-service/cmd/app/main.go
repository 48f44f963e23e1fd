package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/config"
	"gameplatform/services/path-service/internal/application/usecase"
	"gameplatform/services/path-service/internal/infrastructure/ai"
	"gameplatform/services/path-service/internal/infrastructure/cache"
	"gameplatform/services/path-service/internal/infrastructure/repository"
	grpc_server "gameplatform/services/path-service/internal/transport/grpc"
	"gameplatform/services/path-service/pkg/pathpb"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// 1. Config and logger
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	lg, err := logger.New(cfg.AppEnv, "path-service")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		lg.Fatal("failed to connect to db", "error", err)
	}
	lg.Info("running migrations")
	if err := repository.Migrate(db); err != nil {
		lg.Fatal("failed to migrate db", "error", err)
	}

	// 3. Cache. An unreachable redis only disables caching.
	cm := cache.NewManager(
		cache.NewRedisBackend(cache.NewRedisClient(cfg.RedisAddr, cfg.RedisTimeout)),
		cache.TTLs{
			cache.CategoryRecommendations: cfg.CacheTTLRecommendations,
			cache.CategoryContent:         cfg.CacheTTLContent,
			cache.CategoryQuiz:            cfg.CacheTTLQuiz,
			cache.CategoryUserProgress:    cfg.CacheTTLUserProgress,
			cache.CategoryLearningPath:    cfg.CacheTTLLearningPath,
		},
		lg,
	)
	if err := cm.Init(ctx); err != nil {
		lg.Warn("cache unavailable, serving uncached", "error", err)
	}
	defer cm.Close()
	go cm.Watch(ctx, cfg.CacheHealthPeriod)

	// 4. AI capability
	aiClient, err := ai.NewClient(ai.Options{
		BaseURL:        cfg.OpenAIBaseURL,
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.OpenAIModel,
		EmbedModel:     cfg.OpenAIEmbedModel,
		Timeout:        cfg.OpenAITimeout,
		RequestsPerSec: cfg.AIRequestsPerSec,
	}, lg)
	if err != nil {
		lg.Fatal("failed to build ai client", "error", err)
	}

	// 5. Layers
	svc := usecase.NewPathService(
		repository.NewContentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewQuizRepository(db),
		aiClient,
		cm,
		usecase.Options{
			Retry: usecase.RetryPolicy{
				Attempts: cfg.EmbedRetryAttempts,
				Initial:  cfg.EmbedRetryInitial,
				Max:      cfg.EmbedRetryMax,
			},
			AnalyzeConcurrency:  cfg.AnalyzeConcurrency,
			SimilarityThreshold: cfg.SimilarityThreshold,
			DuplicateThreshold:  cfg.DuplicateThreshold,
		},
		lg,
	)

	// 6. Metrics
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("metrics server stopped", "error", err)
		}
	}()

	// 7. gRPC
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		lg.Fatal("failed to listen", "addr", cfg.GRPCPort, "error", err)
	}
	grpcServer := grpc.NewServer()
	pathpb.RegisterPathServiceServer(grpcServer, grpc_server.NewPathServer(svc, lg))

	go func() {
		<-ctx.Done()
		lg.Info("shutting down")
		grpcServer.GracefulStop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	lg.Info("path service running", "grpc", cfg.GRPCPort, "metrics", cfg.MetricsAddr)
	if err := grpcServer.Serve(lis); err != nil {
		lg.Fatal("failed to serve", "error", err)
	}
}
