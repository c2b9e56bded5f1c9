package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ankitpatne/clipTag/internal/app"
	"github.com/ankitpatne/clipTag/internal/cache"
	"github.com/ankitpatne/clipTag/internal/config"
	"github.com/ankitpatne/clipTag/internal/db"
	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/renderer"
	"github.com/ankitpatne/clipTag/internal/repository/mariadb"
	"github.com/ankitpatne/clipTag/internal/task"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	strg, err := app.NewStorage(ctx, cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise object storage: %v", err)
		os.Exit(1)
	}
	if err := strg.InitBucket(ctx); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise bucket %q: %v", cfg.S3Bucket, err)
		os.Exit(1)
	}

	index, err := app.NewSearchIndex(ctx, cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise search index: %v", err)
		os.Exit(1)
	}
	if err := index.EnsureIndex(ctx); err != nil {
		logger.Warnf(ctx, "⚠️  Search index unavailable, continuing without it: %v", err)
	}

	repo := mariadb.NewVideoRepository(database.DB)

	var ca port.Cache
	var locker port.Locker
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		client := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		ca = cache.NewCacheWithClient(client)
		locker = cache.NewRedisLocker(client, app.AnalysisLockTTL(ctx, cfg))
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, app.AnalysisTaskTimeout(cfg))
		logger.Info(ctx, "✅  Redis cache, lock and queue enabled")
	} else {
		ca = cache.NewNoop()
		locker = cache.NewLocalLocker()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching and queued analysis are disabled")
	}

	analyser, closeAnalyser, err := app.NewAnalyser(ctx, cfg, repo, strg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise analysis providers: %v", err)
		os.Exit(1)
	}
	defer closeAnalyser()

	svcs := services{
		uploader:   video.NewVideoUploader(repo, strg, index, uuid.NewString),
		runner:     video.NewAnalysisRunner(analyser, locker, index, ca),
		scheduler:  video.NewAnalysisScheduler(repo, dispatcher),
		moderation: video.NewModerationLister(repo, strg),
		searcher:   video.NewVideoSearcher(index),
		lister:     video.NewVideoLister(repo, strg),
		getter:     video.NewVideoGetter(repo, strg),
		renderer:   renderer.NewHTTPRenderer(ca),
		callback:   video.NewTranscodeCallback(repo, app.NewFetcher(cfg), ca),
	}

	r := initRouter(ctx, cfg.JWTPublicKey, svcs)

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.ServerPort),
		Handler: otelhttp.NewHandler(r, "cliptag-api"),
	}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
