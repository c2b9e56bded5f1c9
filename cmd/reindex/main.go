package main

import (
	"context"
	"log"

	"github.com/ankitpatne/clipTag/internal/app"
	"github.com/ankitpatne/clipTag/internal/config"
	"github.com/ankitpatne/clipTag/internal/db"
	"github.com/ankitpatne/clipTag/internal/repository/mariadb"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	log.Println("initialising database...")
	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	strg, err := app.NewStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("❌  Failed to initialise object storage: %v", err)
	}
	index, err := app.NewSearchIndex(ctx, cfg)
	if err != nil {
		log.Fatalf("❌  Failed to initialise search index: %v", err)
	}

	reindexer := video.NewSearchReindexer(mariadb.NewVideoRepository(database.DB), strg, index)
	if err := reindexer.Reindex(ctx); err != nil {
		log.Fatalf("❌  Reindex failed: %v", err)
	}
	log.Println("✅  Search index rebuilt")
}
