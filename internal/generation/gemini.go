package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
)

var ErrEmptyResponse = errors.New("model returned no text")

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator completes prompts with a Gemini model, throttled to a fixed request rate.
type Generator struct {
	models  contentGenerator
	model   string
	limiter *rate.Limiter
}

// compile-time check: *Generator must satisfy port.TextGenerator
var _ port.TextGenerator = (*Generator)(nil)

func NewGenerator(ctx context.Context, apiKey, model string, requestsPerSecond float64) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return newGenerator(client.Models, model, requestsPerSecond), nil
}

func newGenerator(models contentGenerator, model string, requestsPerSecond float64) *Generator {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Generator{
		models:  models,
		model:   model,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Generate sends prompt as a single user turn and returns the trimmed text of
// every candidate part.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", err)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", g.model, err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	logger.Debugf(ctx, "model %s answered with %d characters", g.model, len(text))
	return text, nil
}
