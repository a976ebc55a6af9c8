package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/geodata-service/internal/adapter/http"
	"github.com/couchcryptid/geodata-service/internal/cache"
	"github.com/couchcryptid/geodata-service/internal/config"
	"github.com/couchcryptid/geodata-service/internal/fetch"
	"github.com/couchcryptid/geodata-service/internal/observability"
	"github.com/couchcryptid/geodata-service/internal/provider"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LoggerConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	metrics := observability.NewMetrics()

	// Cache backend: Redis when configured, in-process otherwise.
	var store cache.Store
	var redisStore *cache.Redis
	if cfg.RedisAddr != "" {
		redisStore = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		store = redisStore
		logger.Info("using redis cache", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	} else {
		store = cache.NewMemory()
		logger.Info("using in-memory cache")
	}

	fetcher := fetch.NewClient(logger, metrics, cfg.VendorRatePerSecond, cfg.VendorBurst)

	registry := provider.NewRegistry()
	if err := provider.RegisterAll(registry, cfg, fetcher, store, metrics, logger); err != nil {
		logger.Error("provider registration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("providers registered",
		"geocoder", cfg.GeocoderSlug,
		"weather", cfg.WeatherSlug,
		"elevation", cfg.ElevationSlug,
		"map", cfg.MapSlug)

	ready := httpadapter.ReadinessFunc(func(ctx context.Context) error {
		if redisStore != nil {
			return redisStore.Ping(ctx)
		}
		return nil
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, registry, ready, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
