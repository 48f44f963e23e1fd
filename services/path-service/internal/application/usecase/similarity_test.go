package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"gameplatform/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(ai *fakeAI) *SimilarityEngine {
	return NewSimilarityEngine(ai, testOptions().Retry, logger.NewNop())
}

func TestSimilarityMatrixSymmetricUnitDiagonal(t *testing.T) {
	ai := newFakeAI()
	ai.vectors["a"] = []float32{1, 0, 0, 0}
	ai.vectors["b"] = []float32{1, 1, 0, 0}
	ai.vectors["c"] = []float32{0, 1, 1, 0}
	ai.vectors["zero"] = []float32{0, 0, 0, 0}

	m := newEngine(ai).SimilarityMatrix(context.Background(), []string{"a", "b", "c", "zero"})
	require.Len(t, m, 4)
	for i := range m {
		assert.InDelta(t, 1.0, m[i][i], 1e-6)
		for j := range m {
			assert.InDelta(t, m[i][j], m[j][i], 1e-9)
		}
	}
	assert.InDelta(t, 0.7071, m[0][1], 1e-3)
	assert.InDelta(t, 0.0, m[0][2], 1e-6)
	assert.Equal(t, 0.0, m[0][3], "zero vector must not produce NaN")
}

func TestMeanSimilarity(t *testing.T) {
	ai := newFakeAI()
	ai.vectors["x"] = []float32{1, 0, 0, 0}
	ai.vectors["same"] = []float32{2, 0, 0, 0}
	ai.vectors["orth"] = []float32{0, 1, 0, 0}
	e := newEngine(ai)

	assert.InDelta(t, 0.5, e.MeanSimilarity(context.Background(), "x", []string{"same", "orth"}), 1e-6)
	assert.Equal(t, 0.0, e.MeanSimilarity(context.Background(), "x", nil))
}

func TestEmbeddingRetryExhaustionYieldsZero(t *testing.T) {
	ai := newFakeAI()
	ai.embedErr = errors.New("rate limited")
	e := newEngine(ai)

	assert.Equal(t, 0.0, e.MeanSimilarity(context.Background(), "x", []string{"y"}))
	assert.Equal(t, int32(3), ai.embedCalls.Load())

	assert.Nil(t, e.SimilarityMatrix(context.Background(), []string{"a", "b"}))
	_, err := e.Embed(context.Background(), []string{"a"})
	assert.Error(t, err)
}

type flakyAI struct {
	*fakeAI
	failures int
}

func (f *flakyAI) Embedding(ctx context.Context, text string) ([]float32, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("transient")
	}
	return f.fakeAI.Embedding(ctx, text)
}

func TestEmbeddingRetryRecovers(t *testing.T) {
	ai := &flakyAI{fakeAI: newFakeAI(), failures: 2}
	ai.vectors["a"] = []float32{1, 0, 0, 0}
	e := NewSimilarityEngine(ai, testOptions().Retry, logger.NewNop())

	vecs, err := e.Embed(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0, 0, 0}}, vecs)
}

func TestEmbeddingInputTruncated(t *testing.T) {
	ai := newFakeAI()
	long := strings.Repeat("é", embedInputLimit+500)

	_, err := newEngine(ai).Embed(context.Background(), []string{long})
	require.NoError(t, err)
	require.Len(t, ai.embedded, 1)
	assert.Equal(t, embedInputLimit, utf8.RuneCountInString(ai.embedded[0]))
}
