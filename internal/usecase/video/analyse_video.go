package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/port"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/ankitpatne/clipTag/internal/usecase/video")

type AnalyserConfig struct {
	PresignExpiry     time.Duration
	AnnotationTimeout time.Duration
}

type videoAnalyserSrv struct {
	repo      port.VideoRepository
	strg      port.Storage
	fetcher   port.Fetcher
	annotator port.Annotator
	generator port.TextGenerator
	cfg       AnalyserConfig
}

// compile-time check: *videoAnalyserSrv must satisfy port.VideoAnalyser
var _ port.VideoAnalyser = (*videoAnalyserSrv)(nil)

func NewVideoAnalyser(
	repo port.VideoRepository,
	strg port.Storage,
	fetcher port.Fetcher,
	annotator port.Annotator,
	generator port.TextGenerator,
	cfg AnalyserConfig,
) port.VideoAnalyser {
	return &videoAnalyserSrv{repo, strg, fetcher, annotator, generator, cfg}
}

func (s *videoAnalyserSrv) AnalyseVideo(ctx context.Context, videoID string) (out port.AnalysisOutput, err error) {
	ctx, span := tracer.Start(ctx, "video.analyse", trace.WithAttributes(attribute.String("video.id", videoID)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	v, err := s.repo.GetByVideoID(ctx, videoID)
	if err != nil {
		return port.AnalysisOutput{}, err
	}

	content, err := s.download(ctx, v)
	if err != nil {
		return port.AnalysisOutput{}, err
	}

	ann, err := s.annotate(ctx, videoID, content)
	if err != nil {
		return port.AnalysisOutput{}, err
	}
	ext := extract(ann)

	// the flag is published before generation so moderation does not wait on it
	flagged := Decide(ext.frames)
	logger.Infof(ctx, "setting moderation flag of video %q to %t...", videoID, flagged)
	if err := s.repo.SetModerationFlag(ctx, videoID, flagged); err != nil {
		return port.AnalysisOutput{}, fmt.Errorf("could not persist moderation flag: %w", err)
	}

	title, description, err := s.generate(ctx, ext)
	if err != nil {
		return port.AnalysisOutput{}, err
	}

	analysis := model.Analysis{
		Tags:                   ext.tags,
		ExplicitFrames:         ext.frames,
		Transcription:          ext.transcript,
		AIGeneratedTitle:       title,
		AIGeneratedDescription: description,
	}
	if err := s.repo.CommitAnalysis(ctx, videoID, analysis); err != nil {
		return port.AnalysisOutput{}, err
	}

	return port.AnalysisOutput{
		VideoID:                videoID,
		Title:                  deref(v.Title),
		Description:            deref(v.Description),
		AIGeneratedTitle:       title,
		AIGeneratedDescription: description,
		Tags:                   ext.tags,
		ExplicitContent:        ext.frames,
		Transcription:          ext.transcript,
	}, nil
}

func (s *videoAnalyserSrv) download(ctx context.Context, v *model.Video) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "video.download")
	defer span.End()

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, v.StorageKey, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("could not sign download of %q: %w", v.StorageKey, err)
	}

	content, err := s.fetcher.Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	span.SetAttributes(attribute.Int("video.size_bytes", len(content)))

	return content, nil
}

func (s *videoAnalyserSrv) annotate(ctx context.Context, videoID string, content []byte) (*model.Annotation, error) {
	ctx, span := tracer.Start(ctx, "video.annotate")
	defer span.End()

	annCtx, cancel := context.WithTimeout(ctx, s.cfg.AnnotationTimeout)
	defer cancel()

	logger.Infof(ctx, "submitting video %q for annotation (%d bytes)...", videoID, len(content))
	ann, err := s.annotator.Annotate(annCtx, content)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(annCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrAnnotationTimeout, s.cfg.AnnotationTimeout)
		}
		return nil, fmt.Errorf("annotation failed: %w", err)
	}

	return ann, nil
}

func (s *videoAnalyserSrv) generate(ctx context.Context, ext extraction) (string, string, error) {
	ctx, span := tracer.Start(ctx, "video.generate")
	defer span.End()

	title, err := s.generator.Generate(ctx, titlePrompt(ext.transcript, ext.tags))
	if err != nil {
		return "", "", fmt.Errorf("%w: title: %v", ErrGeneration, err)
	}

	description, err := s.generator.Generate(ctx, descriptionPrompt(ext.transcript, ext.tags))
	if err != nil {
		return "", "", fmt.Errorf("%w: description: %v", ErrGeneration, err)
	}

	return title, description, nil
}

func titlePrompt(transcript string, tags []string) string {
	return fmt.Sprintf(
		"Generate a concise title for a video about %s with tags %s. Give only the title directly without any additional information.",
		transcript, strings.Join(tags, ", "),
	)
}

func descriptionPrompt(transcript string, tags []string) string {
	return fmt.Sprintf(
		"Generate a description for a video about %s with tags %s. Give only the description directly without any additional information. It should be a brief summary of the video content.",
		transcript, strings.Join(tags, ", "),
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
