package port

import (
	"context"
	"encoding/json"

	"github.com/ankitpatne/clipTag/internal/model"
)

// Annotator runs label, explicit-content and speech analysis on raw video bytes
// and blocks until the provider job completes or ctx expires.
type Annotator interface {
	Annotate(ctx context.Context, content []byte) (*model.Annotation, error)
}

// TextGenerator completes a single prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Fetcher performs the outbound HTTP calls of the service.
type Fetcher interface {
	Download(ctx context.Context, url string) ([]byte, error)
	Confirm(ctx context.Context, url string) error
}

// SearchIndex mirrors video records for full-text search.
type SearchIndex interface {
	EnsureIndex(ctx context.Context) error
	IndexVideo(ctx context.Context, doc model.SearchDocument) error
	UpdateAnalysis(ctx context.Context, out AnalysisOutput) error
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
}
