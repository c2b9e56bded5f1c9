// Package app assembles the adapters shared by the service binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ankitpatne/clipTag/internal/annotation"
	"github.com/ankitpatne/clipTag/internal/config"
	"github.com/ankitpatne/clipTag/internal/generation"
	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/remote"
	"github.com/ankitpatne/clipTag/internal/search"
	"github.com/ankitpatne/clipTag/internal/storage"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

// downloads share the annotation budget
const downloadTimeoutFactor = 2

// analysisTaskSlack covers generation and the commit after annotation.
const analysisTaskSlack = 5 * time.Minute

func NewStorage(ctx context.Context, cfg *config.Settings) (*storage.MinioStorage, error) {
	strg, err := storage.NewStorage(storage.Config{
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		UseSSL:        cfg.S3UseSSL,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("object storage: %w", err)
	}
	return strg, nil
}

func NewSearchIndex(ctx context.Context, cfg *config.Settings) (*search.Index, error) {
	logger.Info(ctx, "initialising search index...")
	index, err := search.NewIndex(search.Config{
		Addresses: cfg.ElasticsearchAddresses,
		Username:  cfg.ElasticsearchUsername,
		Password:  cfg.ElasticsearchPassword,
		Index:     cfg.ElasticsearchIndex,
		Insecure:  cfg.ElasticsearchInsecure,
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// NewAnalyser wires the analysis pipeline to its Google Cloud providers. The
// returned func releases the provider clients.
func NewAnalyser(ctx context.Context, cfg *config.Settings, repo port.VideoRepository, strg port.Storage) (port.VideoAnalyser, func(), error) {
	logger.Info(ctx, "initialising analysis providers...")

	annotator, err := annotation.NewAnnotator(ctx, cfg.GoogleCredentialsFile, cfg.AnnotationLanguage)
	if err != nil {
		return nil, nil, err
	}
	generator, err := generation.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiRequestsPerSecond)
	if err != nil {
		_ = annotator.Close()
		return nil, nil, err
	}
	fetcher := NewFetcher(cfg)

	analyser := video.NewVideoAnalyser(repo, strg, fetcher, annotator, generator, video.AnalyserConfig{
		PresignExpiry:     cfg.PresignExpiry,
		AnnotationTimeout: cfg.AnnotationTimeout,
	})
	cleanup := func() {
		if err := annotator.Close(); err != nil {
			logger.Warnf(ctx, "annotation client close error: %v", err)
		}
	}
	return analyser, cleanup, nil
}

// AnalysisRunBudget is the longest a single analysis run is expected to take:
// download, annotation, then generation and the commit.
func AnalysisRunBudget(cfg *config.Settings) time.Duration {
	return downloadTimeoutFactor*cfg.AnnotationTimeout + cfg.AnnotationTimeout + analysisTaskSlack
}

// AnalysisTaskTimeout bounds one queued analysis run.
func AnalysisTaskTimeout(cfg *config.Settings) time.Duration {
	return AnalysisRunBudget(cfg)
}

// AnalysisLockTTL is the configured lock TTL, raised to the run budget when
// configured below it.
func AnalysisLockTTL(ctx context.Context, cfg *config.Settings) time.Duration {
	budget := AnalysisRunBudget(cfg)
	if cfg.AnalysisLockTTL < budget {
		logger.Warnf(ctx, "ANALYSIS_LOCK_TTL %s is below the analysis budget, using %s", cfg.AnalysisLockTTL, budget)
		return budget
	}
	return cfg.AnalysisLockTTL
}

// NewFetcher returns the outbound HTTP client used for downloads and
// subscription confirmations.
func NewFetcher(cfg *config.Settings) *remote.Fetcher {
	return remote.NewFetcher(downloadTimeoutFactor * cfg.AnnotationTimeout)
}
