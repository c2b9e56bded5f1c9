package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ankitpatne/clipTag/internal/app"
	"github.com/ankitpatne/clipTag/internal/cache"
	"github.com/ankitpatne/clipTag/internal/config"
	"github.com/ankitpatne/clipTag/internal/db"
	workerHandler "github.com/ankitpatne/clipTag/internal/handler/worker"
	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/notification"
	"github.com/ankitpatne/clipTag/internal/port"
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
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg, err := app.NewStorage(ctx, cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise object storage: %v", err)
		os.Exit(1)
	}
	index, err := app.NewSearchIndex(ctx, cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise search index: %v", err)
		os.Exit(1)
	}

	repo := mariadb.NewVideoRepository(database.DB)
	client := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	ca := cache.NewCacheWithClient(client)
	locker := cache.NewRedisLocker(client, app.AnalysisLockTTL(ctx, cfg))

	analyser, closeAnalyser, err := app.NewAnalyser(ctx, cfg, repo, strg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise analysis providers: %v", err)
		os.Exit(1)
	}
	defer closeAnalyser()
	runner := video.NewAnalysisRunner(analyser, locker, index, ca)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeAnalyseVideo, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseAnalyseVideoPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.AnalyseVideoHandler(ctx, p, runner)
	})

	listenCtx, stopListener := context.WithCancel(ctx)
	defer stopListener()
	startNotificationListener(listenCtx, cfg, video.NewTranscodeCallback(repo, app.NewFetcher(cfg), ca))

	runWorker(ctx, mux, cfg, stopListener)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

// startNotificationListener pulls transcode notifications when a subscription
// is configured; the HTTP callback stays available either way.
func startNotificationListener(ctx context.Context, cfg *config.Settings, callback port.TranscodeCallback) {
	if cfg.PubSubProjectID == "" || cfg.TranscodeSubscription == "" {
		logger.Info(ctx, "Pub/Sub not configured, transcode notifications arrive over HTTP only")
		return
	}

	client, err := notification.NewClient(ctx, cfg.PubSubProjectID, cfg.GoogleCredentialsFile)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise Pub/Sub: %v", err)
		os.Exit(1)
	}
	listener := notification.NewListener(client, cfg.TranscodeSubscription, callback)

	go func() {
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warnf(context.Background(), "Pub/Sub close error: %v", err)
			}
		}()
		if err := listener.Listen(ctx); err != nil {
			logger.Errorf(ctx, "❌  Notification listener stopped: %v", err)
		}
	}()
	logger.Infof(ctx, "🚀 Listening on subscription %q", cfg.TranscodeSubscription)
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, stopListener context.CancelFunc) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency:     10,
		ShutdownTimeout: 30 * time.Second,
	})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	stopListener()
	// stop accepting new tasks, wait up to ShutdownTimeout for in-flight ones
	srv.Shutdown()
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
