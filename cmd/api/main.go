package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mouvement-ensemble/membership-portal/internal/api"
	"github.com/mouvement-ensemble/membership-portal/internal/api/handler"
	"github.com/mouvement-ensemble/membership-portal/internal/core/service"
	"github.com/mouvement-ensemble/membership-portal/internal/infrastructure/config"
	mongodb "github.com/mouvement-ensemble/membership-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/mouvement-ensemble/membership-portal/internal/infrastructure/db/redis"
	"github.com/mouvement-ensemble/membership-portal/internal/infrastructure/queue"
	"github.com/mouvement-ensemble/membership-portal/internal/infrastructure/remote"
	"github.com/mouvement-ensemble/membership-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	secret := cfg.SessionSecret
	if secret == "" {
		if cfg.Env != "development" {
			log.Fatal().Msg("SESSION_SECRET is required outside development")
		}
		secret = "dev-only-session-secret"
		log.Warn().Msg("SESSION_SECRET not set, using development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	// --- Services ---
	auditRepo := mongodb.NewAuditRepository(db)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewAuditService(auditRepo, log), log)
	dispatcher.Start(ctx)

	gateway := remote.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL)
	authService := service.NewAuthService(gateway, sessions, redisdb.NewLoginLock(rdb), dispatcher, log)
	cardService := service.NewCardService(cfg.PublicOrigin, dispatcher)

	e := api.NewRouter(api.Dependencies{
		Auth:  authService,
		Cards: cardService,
		Audit: auditRepo,
		Redis: rdb,
		Mongo: db,
		Cookie: handler.CookieConfig{
			Secret: secret,
			TTL:    cfg.SessionTTL,
			Secure: cfg.Env != "development",
		},
		Log: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting membership portal")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
