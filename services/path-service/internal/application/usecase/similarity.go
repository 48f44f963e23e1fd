package usecase

import (
	"context"
	"math"
	"time"

	"gameplatform/pkg/logger"

	"github.com/cenkalti/backoff/v5"
	"github.com/viterin/vek/vek32"
)

const embedInputLimit = 8000

// RetryPolicy bounds how often an embedding call is attempted.
type RetryPolicy struct {
	Attempts uint
	Initial  time.Duration
	Max      time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Initial: 4 * time.Second, Max: 10 * time.Second}
}

// SimilarityEngine compares texts through the embedding capability. Embedding failures are
// retried and then degrade to empty results; they never reach the caller.
type SimilarityEngine struct {
	ai    Capability
	retry RetryPolicy
	log   *logger.Logger
}

func NewSimilarityEngine(ai Capability, retry RetryPolicy, log *logger.Logger) *SimilarityEngine {
	if retry.Attempts == 0 {
		retry.Attempts = 1
	}
	return &SimilarityEngine{ai: ai, retry: retry, log: log.With("component", "similarity")}
}

func (e *SimilarityEngine) embed(ctx context.Context, text string) ([]float32, error) {
	text = truncateRunes(text, embedInputLimit)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.retry.Initial
	b.MaxInterval = e.retry.Max
	b.Multiplier = 2
	b.RandomizationFactor = 0

	return backoff.Retry(ctx, func() ([]float32, error) {
		return e.ai.Embedding(ctx, text)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(e.retry.Attempts))
}

// Embed returns one vector per text, or an error if any text could not be embedded.
func (e *SimilarityEngine) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := e.embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// SimilarityMatrix is symmetric with a unit diagonal; nil when embedding failed.
func (e *SimilarityEngine) SimilarityMatrix(ctx context.Context, texts []string) [][]float64 {
	vecs, err := e.Embed(ctx, texts)
	if err != nil {
		e.log.Warn("similarity matrix degraded to empty", "texts", len(texts), "error", err)
		return nil
	}
	return matrixOf(vecs)
}

func matrixOf(vecs [][]float32) [][]float64 {
	m := make([][]float64, len(vecs))
	for i := range m {
		m[i] = make([]float64, len(vecs))
		m[i][i] = 1
	}
	for i := range vecs {
		for j := i + 1; j < len(vecs); j++ {
			s := cosine(vecs[i], vecs[j])
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m
}

// MeanSimilarity is the average cosine similarity of text to each reference; 0 on failure.
func (e *SimilarityEngine) MeanSimilarity(ctx context.Context, text string, refs []string) float64 {
	if len(refs) == 0 {
		return 0
	}
	refVecs, err := e.Embed(ctx, refs)
	if err != nil {
		e.log.Warn("reference embeddings failed", "error", err)
		return 0
	}
	return e.meanAgainst(ctx, text, refVecs)
}

func (e *SimilarityEngine) meanAgainst(ctx context.Context, text string, refVecs [][]float32) float64 {
	if len(refVecs) == 0 {
		return 0
	}
	v, err := e.embed(ctx, text)
	if err != nil {
		e.log.Warn("embedding failed, similarity is zero", "error", err)
		return 0
	}
	var sum float64
	for _, r := range refVecs {
		sum += cosine(v, r)
	}
	return sum / float64(len(refVecs))
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	s := float64(vek32.CosineSimilarity(a, b))
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return s
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
