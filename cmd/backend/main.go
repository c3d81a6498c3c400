// Package main provides the entry point for the AI Directory badge service.
//
//	@title			AI Directory Badge API
//	@version		1.0.0
//	@description	Embeddable product badges, click-through tracking and owner analytics.
//
//	@contact.name	AI Directory Support
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Authorization header. Format: "Bearer {token}"
package main

import (
	"AIDIR-Backend/internal/access"
	"AIDIR-Backend/internal/analytics"
	"AIDIR-Backend/internal/auth"
	"AIDIR-Backend/internal/badge"
	"AIDIR-Backend/internal/config"
	"AIDIR-Backend/internal/database"
	"AIDIR-Backend/internal/embed"
	httpHandler "AIDIR-Backend/internal/handler/http"
	"AIDIR-Backend/internal/ratelimit"
	"AIDIR-Backend/internal/repository"
	"AIDIR-Backend/internal/repository/memory"
	"AIDIR-Backend/internal/repository/postgres"
	"AIDIR-Backend/internal/scheduler"
	"AIDIR-Backend/internal/service"
	"AIDIR-Backend/pkg/logger"
	"AIDIR-Backend/pkg/useragent"
	"context"
	"errors"
	"fmt"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "AIDIR-Backend/docs" // Import swagger docs
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting AI Directory badge service",
		zap.String("env", cfg.Env),
		zap.String("db_driver", cfg.Database.Driver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer closeStorage()

	// Initialize User-Agent parser
	uaParser, err := useragent.NewParser(cfg.UserAgent.RegexesPath, log)
	if err != nil {
		log.Fatal("failed to initialize User-Agent parser", zap.Error(err))
	}

	limiter, memLimiter, closeLimiter := newLimiter(ctx, cfg, log)

	// Badge data
	resolver := access.NewResolver(storage)
	badgeData := service.NewBadgeDataService(storage, resolver, &cfg.Badge, log)
	renderer := badge.NewRenderer(badge.NewLayout(), cfg.Badge.PlatformName)
	links := httpHandler.NewLinks(cfg.Badge.BaseURL, cfg.Badge.ProductPath)

	// Analytics
	tracker := analytics.NewTracker(storage, limiter, uaParser, log)
	processor := analytics.NewProcessor(tracker, log, analytics.ProcessorConfig{
		WorkerCount:     cfg.Analytics.Workers,
		BufferSize:      cfg.Analytics.BufferSize,
		RetryAttempts:   cfg.Analytics.RetryAttempts,
		RetryDelay:      cfg.Analytics.RetryDelay,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
	})
	if err := processor.Start(); err != nil {
		log.Fatal("failed to start click processor", zap.Error(err))
	}
	stats := analytics.NewStatsService(storage, cfg.Analytics.StatsWindowDays, cfg.Analytics.TopReferrers, log)

	// Periodic cleanup of in-process state
	sweepers := map[string]scheduler.Sweeper{"badge_cache": badgeData}
	if memLimiter != nil {
		sweepers["rate_limiter"] = memLimiter
	}
	maintenance := scheduler.NewMaintenanceService(cfg.Badge.SweepInterval, sweepers, log)
	if err := maintenance.Start(ctx); err != nil {
		log.Fatal("failed to start maintenance scheduler", zap.Error(err))
	}

	metrics := map[string]httpHandler.StatsProvider{
		"click_processor": processor,
		"badge_cache":     badgeData,
		"maintenance":     maintenance,
	}
	if memLimiter != nil {
		metrics["rate_limiter"] = memLimiter
	}

	jwtService := auth.NewJWTService(&auth.JWTConfig{
		SecretKey: []byte(cfg.Auth.JWTSecret),
		Issuer:    cfg.Auth.Issuer,
	})

	httpAPIServer := httpHandler.NewServer(
		httpHandler.NewBadgeHandler(badgeData, renderer, processor, links, log),
		httpHandler.NewClickHandler(tracker, log),
		httpHandler.NewStatsHandler(stats, log),
		httpHandler.NewEmbedHandler(badgeData, embed.NewGenerator(cfg.Badge.PlatformName), links, log),
		httpHandler.NewHealthHandler(storage, metrics, version, log),
		auth.NewMiddleware(jwtService, cfg.HTTPServer.CORSOrigins, log),
		log,
	)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      httpAPIServer.SetupRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting HTTP server", zap.String("address", srv.Addr))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down AI Directory badge service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	// клики из очереди дописываются после остановки HTTP
	if err := processor.Stop(); err != nil {
		log.Error("failed to stop click processor", zap.Error(err))
	}
	closeLimiter()
	maintenance.Stop()
}

// openStorage returns the storage selected by cfg.Database.Driver and a
// function releasing its resources.
func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Storage, func(), error) {
	if cfg.Database.Driver == "memory" {
		store := memory.New()
		if cfg.Database.SeedData {
			if err := seedMemory(ctx, store); err != nil {
				return nil, nil, err
			}
			log.Info("seeded in-memory storage with demo data")
		}
		return store, func() {}, nil
	}

	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeDB := func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}

	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	if cfg.Database.SeedData {
		log.Info("seeding database with initial data (seed_data: true)")
		if err := database.SeedData(db, log); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	return postgres.New(db, log), closeDB, nil
}

func seedMemory(ctx context.Context, store *memory.MemStorage) error {
	products, subscriptions := database.DemoData(time.Now().UTC())
	for i := range products {
		if err := store.SaveProduct(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].Slug, err)
		}
	}
	for i := range subscriptions {
		if err := store.SaveSubscription(ctx, &subscriptions[i]); err != nil {
			return fmt.Errorf("failed to seed subscription: %w", err)
		}
	}
	return nil
}

// newLimiter prefers the shared Redis limiter and falls back to the
// in-process one. The second result is non-nil only for the in-process limiter;
// the third releases the Redis connection and must run after the processor drains.
func newLimiter(ctx context.Context, cfg *config.Config, log *zap.Logger) (ratelimit.Limiter, *ratelimit.MemoryLimiter, func()) {
	rlCfg := ratelimit.Config{
		Limit:  cfg.Badge.ClickRateLimit,
		Window: cfg.Badge.ClickRateWindow,
	}

	if cfg.Redis.Enabled {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			log.Info("using redis click rate limiter", zap.String("addr", cfg.Redis.Addr))
			closeRedis := func() {
				if err := rdb.Close(); err != nil {
					log.Error("failed to close redis client", zap.Error(err))
				}
			}
			return ratelimit.NewRedisLimiter(rdb, rlCfg), nil, closeRedis
		}
		log.Warn("redis unavailable, falling back to in-process rate limiter", zap.Error(err))
	}

	mem := ratelimit.NewMemoryLimiter(rlCfg)
	return mem, mem, func() {}
}
