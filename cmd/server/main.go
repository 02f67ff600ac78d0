// Command server runs the outfit sharing HTTP API.
//
// @title        Outfit Share API
// @version      1.0
// @description  Post outfits, like them and comment on them.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/outfitshare/outfit-api/internal/api"
	"github.com/outfitshare/outfit-api/internal/api/handler"
	"github.com/outfitshare/outfit-api/internal/api/metrics"
	"github.com/outfitshare/outfit-api/internal/core/ports"
	"github.com/outfitshare/outfit-api/internal/core/service"
	"github.com/outfitshare/outfit-api/internal/infrastructure/db/mongo"
	"github.com/outfitshare/outfit-api/internal/infrastructure/db/redis"
	"github.com/outfitshare/outfit-api/internal/infrastructure/unsplash"
	"github.com/outfitshare/outfit-api/internal/pkg/config"
	"github.com/outfitshare/outfit-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "outfit-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Bool("transactions", cfg.Mongo.Transactions).Msg("connected to mongodb")

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	// --- Redis (optional) ---
	var rdb *goredis.Client
	rcfg := redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
	if rcfg.Enabled() {
		if rdb, err = redis.Connect(ctx, rcfg); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without image cache")
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error().Err(err).Msg("redis close failed")
				}
			}()
		}
	}

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	outfits := mongo.NewOutfitRepository(db)
	comments := mongo.NewCommentRepository(db)
	tx := mongo.NewTransactor(client, cfg.Mongo.Transactions)

	// --- Services ---
	userSvc := service.NewUserService(users, outfits, comments, tx, cfg.BcryptCost, log)
	outfitSvc := service.NewOutfitService(outfits, comments, users, tx, log)
	commentSvc := service.NewCommentService(comments, outfits, users, tx, log)
	reconciler := service.NewReconcileService(outfits, comments, users, log)

	if cfg.ReconcileOnStart {
		if err := reconcile(ctx, reconciler, log); err != nil {
			return err
		}
	}

	if cfg.Unsplash.AccessKey == "" {
		log.Warn().Msg("UNSPLASH_ACCESS_KEY is not set, image search will fail")
	}
	images := redis.NewCachingImageSearcher(
		unsplash.NewClient(unsplash.Config{AccessKey: cfg.Unsplash.AccessKey, BaseURL: cfg.Unsplash.BaseURL}, nil, log),
		rdb, cfg.Unsplash.CacheTTL, log,
	)

	checks := []handler.DependencyCheck{{
		Name: "mongodb",
		Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}}
	if rdb != nil {
		checks = append(checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redis.Ping(ctx, rdb) },
		})
	}

	// --- HTTP ---
	e := api.NewRouter(api.Services{
		Users:    userSvc,
		Outfits:  outfitSvc,
		Comments: commentSvc,
		Images:   images,
		Checks:   checks,
	}, api.RouterConfig{AllowedOrigins: cfg.AllowedOrigins}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

func reconcile(ctx context.Context, r ports.Reconciler, log zerolog.Logger) error {
	report, err := r.Run(ctx)
	if err != nil {
		return err
	}

	metrics.ReconcileRepairsTotal.WithLabelValues("orphan_comments").Add(float64(report.OrphanCommentsDeleted))
	metrics.ReconcileRepairsTotal.WithLabelValues("outfits_relinked").Add(float64(report.OutfitsRelinked))
	metrics.ReconcileRepairsTotal.WithLabelValues("dangling_likes").Add(float64(report.DanglingLikesPulled))

	if !report.Repaired() {
		log.Info().Msg("references consistent")
	}
	return nil
}
