package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
)

// bodies of failed responses are only read this far for the error message
const errorBodyLimit = 512

type Fetcher struct {
	client *http.Client
}

// compile-time check: *Fetcher must satisfy port.Fetcher
var _ port.Fetcher = (*Fetcher)(nil)

// NewFetcher returns a traced HTTP fetcher. A zero timeout leaves requests
// bounded by their context only.
func NewFetcher(timeout time.Duration) *Fetcher {
	return NewFetcherWithClient(&http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Download GETs url and returns the whole body.
func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	res, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	logger.Debugf(ctx, "downloaded %d bytes", len(body))
	return body, nil
}

// Confirm GETs url and discards the body.
func (f *Fetcher) Confirm(ctx context.Context, url string) error {
	res, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))
		_ = res.Body.Close()
		return nil, &StatusError{Code: res.StatusCode, Body: string(snippet)}
	}
	return res, nil
}

// StatusError reports a non-2xx answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}
