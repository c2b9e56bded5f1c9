package mock

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/port"
)

// Annotator implements port.Annotator for tests. When Block is set, Annotate
// waits for ctx to end and returns its error.
type Annotator struct {
	Out   *model.Annotation
	Err   error
	Block bool

	Called  bool
	Content []byte
}

func (a *Annotator) Annotate(ctx context.Context, content []byte) (*model.Annotation, error) {
	a.Called = true
	a.Content = content
	if a.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return a.Out, a.Err
}

// Generator implements port.TextGenerator for tests. It answers Outputs in
// order; FailAt makes the n-th call (1-based) fail with Err.
type Generator struct {
	mu sync.Mutex

	Outputs []string
	Err     error
	FailAt  int

	Prompts []string
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Prompts = append(g.Prompts, prompt)
	n := len(g.Prompts)
	if g.Err != nil && (g.FailAt == 0 || g.FailAt == n) {
		return "", g.Err
	}
	if n <= len(g.Outputs) {
		return g.Outputs[n-1], nil
	}
	return "generated", nil
}

// Fetcher implements port.Fetcher for tests.
type Fetcher struct {
	Body        []byte
	DownloadErr error
	ConfirmErr  error

	DownloadURL string
	ConfirmURL  string

	DownloadCalled bool
	ConfirmCalled  bool
}

func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	f.DownloadCalled = true
	f.DownloadURL = url
	if f.DownloadErr != nil {
		return nil, f.DownloadErr
	}
	return f.Body, nil
}

func (f *Fetcher) Confirm(ctx context.Context, url string) error {
	f.ConfirmCalled = true
	f.ConfirmURL = url
	return f.ConfirmErr
}

// SearchIndex implements port.SearchIndex for tests.
type SearchIndex struct {
	Hits []json.RawMessage

	EnsureErr error
	IndexErr  error
	UpdateErr error
	SearchErr error

	EnsureCalled bool
	Indexed      []model.SearchDocument
	Updated      []port.AnalysisOutput
	Query        string
}

func (s *SearchIndex) EnsureIndex(ctx context.Context) error {
	s.EnsureCalled = true
	return s.EnsureErr
}

func (s *SearchIndex) IndexVideo(ctx context.Context, doc model.SearchDocument) error {
	s.Indexed = append(s.Indexed, doc)
	return s.IndexErr
}

func (s *SearchIndex) UpdateAnalysis(ctx context.Context, out port.AnalysisOutput) error {
	s.Updated = append(s.Updated, out)
	return s.UpdateErr
}

func (s *SearchIndex) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	s.Query = query
	if s.SearchErr != nil {
		return nil, s.SearchErr
	}
	return s.Hits, nil
}
