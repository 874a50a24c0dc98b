package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/weatherfav/internal/config"
	"github.com/weatherfav/internal/database"
	"github.com/weatherfav/internal/events"
	"github.com/weatherfav/internal/handler"
	"github.com/weatherfav/internal/logging"
	"golang.org/x/sync/errgroup"
)

func runServe(ctx context.Context, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	defer logging.Close()

	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.Open(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	// Initialize Redis
	var publisher events.Publisher = events.NopPublisher{}
	checks := []handler.Check{{Name: "database", Ping: db.Ping}}
	if cfg.Redis.Enabled {
		rdb := initRedis(cfg)
		defer func() {
			if err := rdb.Close(); err != nil {
				logging.Warn("error closing Redis connection: %v", err)
			}
		}()
		redisPublisher := events.NewRedisPublisher(rdb, cfg.Redis.Channel)
		publisher = redisPublisher
		checks = append(checks, handler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
		logging.Info("publishing change events to redis channel %s", redisPublisher.Channel())
	}

	if cfg.Weather.APIKey == "" {
		logging.Warn("OPENWEATHER_API_KEY is not set, weather routes will answer 503")
	}

	router := newRouter(cfg, db, publisher, checks)

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("starting server on %s (version %s)", srv.Addr, Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logging.Info("server exited properly")
	return nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
