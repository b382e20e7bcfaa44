package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/medibook/appointment-system/internal/api"
	"github.com/medibook/appointment-system/internal/core/service"
	"github.com/medibook/appointment-system/internal/infrastructure/db/mongo"
	"github.com/medibook/appointment-system/internal/infrastructure/db/redis"
	"github.com/medibook/appointment-system/internal/infrastructure/queue"
	"github.com/medibook/appointment-system/internal/pkg/config"
	"github.com/medibook/appointment-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := prepareCollections(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb bootstrap failed")
	}

	// Audit pipeline: status changes flow through a sharded worker pool into
	// the booking_events collection, with Redis-backed dedup.
	auditService := service.NewAuditService(
		mongo.NewAuditRepository(db),
		redis.NewDedupChecker(rdb),
		log,
	)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, log, dispatcher)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// prepareCollections creates the unique indexes and seeds the protected core
// roles on startup. Both operations are idempotent.
func prepareCollections(ctx context.Context, db *mongodriver.Database) error {
	users := mongo.NewUserRepository(db)
	roles := mongo.NewRoleRepository(db, users)

	if err := mongo.NewBookingRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := roles.EnsureIndexes(ctx); err != nil {
		return err
	}
	return roles.SeedCoreRoles(ctx)
}
