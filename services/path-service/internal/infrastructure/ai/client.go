package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/metrics"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

type Options struct {
	BaseURL        string
	APIKey         string
	Model          string
	EmbedModel     string
	Timeout        time.Duration
	RequestsPerSec float64
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// Client talks to an OpenAI-compatible API. Every call is rate limited and runs behind a
// circuit breaker; failures come back wrapped in domain.ErrCapabilityFailure or
// domain.ErrMalformedResponse and the caller picks the fallback.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	embedModel string
	http       *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        *logger.Logger
}

func NewClient(opts Options, log *logger.Logger) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("ai: missing api key")
	}
	if log == nil {
		return nil, errors.New("ai: logger required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com"
	}
	if opts.Model == "" {
		opts.Model = "gpt-4-turbo-preview"
	}
	if opts.EmbedModel == "" {
		opts.EmbedModel = "text-embedding-3-small"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	limit := rate.Inf
	if opts.RequestsPerSec > 0 {
		limit = rate.Limit(opts.RequestsPerSec)
	}

	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		model:      opts.Model,
		embedModel: opts.EmbedModel,
		http:       hc,
		limiter:    rate.NewLimiter(limit, 1),
		log:        log.With("component", "ai"),
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "ai-capability",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("ai circuit breaker state change", "from", from.String(), "to", to.String())
		},
	})
	return c, nil
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("ai http %d: %s", e.StatusCode, e.Body)
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.AIRequests.WithLabelValues(op, "cancelled").Inc()
		return fmt.Errorf("%w: %s: %v", domain.ErrCapabilityFailure, op, err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("ai: encode %s request: %w", op, err)
	}

	raw, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &httpError{StatusCode: resp.StatusCode, Body: string(data)}
		}
		return data, nil
	})
	if err != nil {
		metrics.AIRequests.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("%w: %s: %v", domain.ErrCapabilityFailure, op, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		metrics.AIRequests.WithLabelValues(op, "malformed").Inc()
		return fmt.Errorf("%w: %s envelope: %v", domain.ErrMalformedResponse, op, err)
	}
	metrics.AIRequests.WithLabelValues(op, "ok").Inc()
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) chat(ctx context.Context, op, system, user string, maxTokens int) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	}
	var resp chatResponse
	if err := c.post(ctx, op, "/v1/chat/completions", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: %s: no content generated", domain.ErrMalformedResponse, op)
	}
	return resp.Choices[0].Message.Content, nil
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embedding returns the vector for text. Truncation is the caller's job.
func (c *Client) Embedding(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		text = " "
	}
	var resp embeddingResponse
	if err := c.post(ctx, "embedding", "/v1/embeddings", embeddingRequest{Model: c.embedModel, Input: text}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: embedding: empty vector", domain.ErrMalformedResponse)
	}
	return resp.Data[0].Embedding, nil
}

// stripFences removes a markdown code fence the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
