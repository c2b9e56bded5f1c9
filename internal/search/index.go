package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/port"
)

var mapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"video_id":                 map[string]string{"type": "keyword"},
			"title":                    map[string]string{"type": "text"},
			"description":              map[string]string{"type": "text"},
			"tags":                     map[string]string{"type": "keyword"},
			"explicit_content":         map[string]string{"type": "nested"},
			"transcription":            map[string]string{"type": "text"},
			"ai_generated_title":       map[string]string{"type": "text"},
			"ai_generated_description": map[string]string{"type": "text"},
			"s3_url":                   map[string]string{"type": "keyword"},
		},
	},
}

var searchFields = []string{
	"title",
	"description",
	"tags",
	"transcription",
	"ai_generated_title",
	"ai_generated_description",
}

type Config struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
	Insecure  bool
}

type Index struct {
	es    *elasticsearch.Client
	index string
}

// compile-time check: *Index must satisfy port.SearchIndex
var _ port.SearchIndex = (*Index)(nil)

func NewIndex(cfg Config) (*Index, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	}
	if cfg.Insecure {
		esCfg.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return &Index{es: client, index: cfg.Index}, nil
}

// EnsureIndex creates the index with its mapping unless it already exists.
func (i *Index) EnsureIndex(ctx context.Context) error {
	res, err := i.es.Indices.Exists([]string{i.index}, i.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %q: %w", i.index, err)
	}
	drain(res)

	switch res.StatusCode {
	case http.StatusOK:
		logger.Debugf(ctx, "index %q already exists", i.index)
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("check index %q: unexpected status %s", i.index, res.Status())
	}

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}
	res, err = i.es.Indices.Create(i.index,
		i.es.Indices.Create.WithBody(bytes.NewReader(body)),
		i.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %q: %w", i.index, err)
	}
	defer drain(res)
	if res.IsError() {
		return fmt.Errorf("create index %q: %s", i.index, errorReason(res))
	}

	logger.Infof(ctx, "✅  Created index %q", i.index)
	return nil
}

// IndexVideo writes doc under its video_id, replacing any previous document.
func (i *Index) IndexVideo(ctx context.Context, doc model.SearchDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", doc.VideoID, err)
	}

	res, err := i.es.Index(i.index, bytes.NewReader(body),
		i.es.Index.WithDocumentID(doc.VideoID),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index document %q: %w", doc.VideoID, err)
	}
	defer drain(res)
	if res.IsError() {
		return fmt.Errorf("index document %q: %s", doc.VideoID, errorReason(res))
	}
	return nil
}

// UpdateAnalysis merges the analysis fields into the existing document.
func (i *Index) UpdateAnalysis(ctx context.Context, out port.AnalysisOutput) error {
	tags := out.Tags
	if tags == nil {
		tags = model.Tags{}
	}
	frames := out.ExplicitContent
	if frames == nil {
		frames = model.ExplicitFrames{}
	}

	body, err := json.Marshal(map[string]any{
		"doc": map[string]any{
			"title":                    out.Title,
			"description":              out.Description,
			"tags":                     tags,
			"explicit_content":         frames,
			"transcription":            out.Transcription,
			"ai_generated_title":       out.AIGeneratedTitle,
			"ai_generated_description": out.AIGeneratedDescription,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal update %q: %w", out.VideoID, err)
	}

	res, err := i.es.Update(i.index, out.VideoID, bytes.NewReader(body), i.es.Update.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("update document %q: %w", out.VideoID, err)
	}
	defer drain(res)
	if res.IsError() {
		return fmt.Errorf("update document %q: %s", out.VideoID, errorReason(res))
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a multi_match query over the text fields and returns the
// matching documents as stored.
func (i *Index) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": searchFields,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", i.index, err)
	}
	defer drain(res)
	if res.IsError() {
		return nil, fmt.Errorf("search %q: %s", i.index, errorReason(res))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]json.RawMessage, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		hits = append(hits, h.Source)
	}
	return hits, nil
}

func drain(res *esapi.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}

func errorReason(res *esapi.Response) string {
	var e struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&e); err != nil || e.Error.Reason == "" {
		return res.Status()
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s: %s", res.Status(), e.Error.Type, e.Error.Reason))
}
