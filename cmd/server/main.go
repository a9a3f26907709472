package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api"
	"github.com/inkwell/blog-platform/internal/api/handler"
	"github.com/inkwell/blog-platform/internal/core/ports"
	"github.com/inkwell/blog-platform/internal/core/service"
	"github.com/inkwell/blog-platform/internal/infrastructure/cache"
	mongodb "github.com/inkwell/blog-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/blog-platform/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-platform/internal/infrastructure/http/handlers"
	"github.com/inkwell/blog-platform/internal/infrastructure/queue"
	"github.com/inkwell/blog-platform/internal/pkg/config"
	"github.com/inkwell/blog-platform/internal/pkg/token"
	"github.com/inkwell/blog-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Blog Platform API
// @version      1.0
// @description  Multi-user blogging API with cookie-based JWT authentication.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})

	if cfg.JWTSecret == "" {
		// The server stays up so probes keep working, but every auth
		// operation will fail until JWT_SECRET is set.
		log.Warn().Msg("JWT_SECRET is empty, token issuing and verification will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	authRepo := mongodb.NewAuthRepository(db)
	blogRepo := mongodb.NewBlogRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{authRepo, blogRepo, activityRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	responseCache, redisClient := buildCache(ctx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	codec := token.NewCodec(cfg.JWTSecret, token.DefaultTTL)

	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(0, activityService, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(authRepo, codec)
	blogService := service.NewBlogService(blogRepo, responseCache, dispatcher, log,
		service.WithCacheTTL(cfg.Cache.TTL))

	e := api.NewRouter(api.RouterDeps{
		Auth:      handler.NewAuthHandler(authService, cfg.IsProduction()),
		Blog:      handler.NewBlogHandler(blogService, activityService),
		Health:    handlers.NewHealthHandler(),
		Readiness: handlers.NewHealthDependenciesHandler(db, redisClient),
		Codec:     codec,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// buildCache selects the response cache backend. Redis connection problems
// fall back to the in-process cache rather than refusing to start.
func buildCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.ResponseCache, *redis.Client) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemory(), nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory cache")
		return cache.NewMemory(), nil
	}
	return redisdb.NewResponseCache(client, log), client
}
