package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orghub_backend/internal/auth"
	"orghub_backend/internal/auth/gate"
	"orghub_backend/internal/directory"
	"orghub_backend/internal/email"
	"orghub_backend/internal/events"
	apphttp "orghub_backend/internal/http"
	"orghub_backend/internal/http/router"
	"orghub_backend/internal/notification"
	"orghub_backend/internal/organization"
	"orghub_backend/internal/storage"
	"orghub_backend/internal/tenant"
	"orghub_backend/platform/cache"
	"orghub_backend/platform/config"
	"orghub_backend/platform/db"
	"orghub_backend/platform/logger"
	"orghub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Optional redis cache in front of the directory reads
	metaCache, err := cache.NewFromURL(cfg.GetRedisURL(), cfg.GetCacheTTL())
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	if metaCache != nil {
		defer metaCache.Close()
		log.Info("directory cache enabled", "ttl", cfg.GetCacheTTL())
	}

	// Optional object storage for organization logos
	var objects storage.ObjectStore
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure logo bucket", 5, 2*time.Second, func() error {
			return minioSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketOrganizationLogos())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		objects = minioSvc
		log.Info("storage service initialized", "logoBucket", cfg.GetMinioBucketOrganizationLogos())
	} else {
		log.Warn("MinIO not configured; organization logo endpoints disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	dir := directory.WithCache(directory.New(pool), metaCache)
	partitions := tenant.NewStore(pool, log)

	// Notification module subscribes to domain events (not HTTP-facing)
	notification.NewModule(eventBus, newEmailSender(cfg, log), log)

	authModule := auth.NewModule(dir, cfg, val, log)
	orgModule := organization.NewModule(dir, partitions, eventBus, objects, cfg.GetMinioBucketOrganizationLogos(), val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:    cfg,
		Logger:    log,
		Health:    db.NewPoolAdapter(pool),
		EventBus:  eventBus,
		AdminGate: gate.RequireAdmin(authModule.Service()),
		Modules: []apphttp.Module{
			authModule,
			orgModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func newEmailSender(cfg config.EmailConfig, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("SMTP not configured; lifecycle emails disabled")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
