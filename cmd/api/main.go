package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/arcadeboard/scores-api/internal/api"
	"github.com/arcadeboard/scores-api/internal/api/handler"
	"github.com/arcadeboard/scores-api/internal/core/service"
	mongodb "github.com/arcadeboard/scores-api/internal/infrastructure/db/mongo"
	redisdb "github.com/arcadeboard/scores-api/internal/infrastructure/db/redis"
	"github.com/arcadeboard/scores-api/internal/infrastructure/httpserver"
	"github.com/arcadeboard/scores-api/internal/infrastructure/queue"
	"github.com/arcadeboard/scores-api/internal/pkg/config"
	"github.com/arcadeboard/scores-api/internal/pkg/token"
	"github.com/arcadeboard/scores-api/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "scores-api",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		File:    cfg.LogFile,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("scores-api stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	store, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	// --- Core ---
	users := mongodb.NewUserRepository(store.DB)
	history := mongodb.NewHistoryRepository(store.DB)
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	dispatcher := queue.NewDispatcher(cfg.Scores.HistoryWorkers, service.NewHistoryService(history, log), log)
	dispatcher.Start(ctx)
	defer dispatcher.Close()

	scores := service.NewScoreService(users, history, service.ScoreOptions{
		Cache:     redisdb.NewScoreCache(rdb, cfg.Scores.CacheTTL),
		Publisher: dispatcher,
		OwnerOnly: cfg.Scores.OwnerOnly,
	}, log)

	router := api.NewRouter(api.Dependencies{
		Log:          log,
		Tokens:       tokens,
		AuthService:  service.NewAuthService(users, tokens),
		ScoreService: scores,
		Health: map[string]handler.PingFunc{
			"mongodb": store.Ping,
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})

	// --- HTTP ---
	srv := httpserver.New(router, log)
	if err := srv.Start(cfg.Port); err != nil {
		return err
	}
	log.Info().Str("env", cfg.Env).Bool("owner_only", cfg.Scores.OwnerOnly).Msg("scores-api ready")

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-srv.Done():
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil && !errors.Is(err, httpserver.ErrNotStarted) {
		return err
	}
	log.Info().Msg("shutdown complete")
	return nil
}
