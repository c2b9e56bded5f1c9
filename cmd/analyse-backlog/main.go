package main

import (
	"context"
	"log"

	"github.com/ankitpatne/clipTag/internal/app"
	"github.com/ankitpatne/clipTag/internal/config"
	"github.com/ankitpatne/clipTag/internal/db"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/repository/mariadb"
	"github.com/ankitpatne/clipTag/internal/task"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	dispatcher := initDispatcher(cfg)
	repo := mariadb.NewVideoRepository(database.DB)

	backlog := video.NewBacklogAnalyser(repo, dispatcher)
	if err := backlog.AnalyseBacklog(context.Background()); err != nil {
		log.Fatalf("❌  Backlog analysis failed: %v", err)
	}
	log.Println("✅  Backlog analysis queued")
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	dbCfg := db.Config{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	database, err := db.NewFromConfig(dbCfg)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, app.AnalysisTaskTimeout(cfg))
}
