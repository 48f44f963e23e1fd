package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestIsCompletedBoundary(t *testing.T) {
	cases := []struct {
		score *float64
		want  bool
	}{
		{nil, false},
		{ptr(70), true},
		{ptr(69.999), false},
		{ptr(100), true},
		{ptr(0), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsCompleted(c.score), "score=%v", c.score)
	}
}

func TestCompletedScoresSkipsUnscoredAndNilIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	got := CompletedScores([]ProgressRecord{
		{ContentID: a, Score: ptr(85)},
		{ContentID: b},
		{ContentID: c, Score: ptr(50)},
		{ContentID: uuid.Nil, Score: ptr(99)},
	})
	assert.Equal(t, map[uuid.UUID]float64{a: 85}, got)
}

func TestTierSteps(t *testing.T) {
	assert.Equal(t, TierIntermediate, TierBeginner.Next())
	assert.Equal(t, TierExpert, TierExpert.Next())
	assert.Equal(t, TierBeginner, TierBeginner.Prev())
	assert.Equal(t, TierAdvanced, TierExpert.Prev())
	assert.Equal(t, TierBeginner, Tier(42).Next())
}

func TestRecommendedDifficulty(t *testing.T) {
	assert.Equal(t, TierExpert, RecommendedDifficulty(95))
	assert.Equal(t, TierExpert, RecommendedDifficulty(90))
	assert.Equal(t, TierAdvanced, RecommendedDifficulty(75))
	assert.Equal(t, TierIntermediate, RecommendedDifficulty(60))
	assert.Equal(t, TierBeginner, RecommendedDifficulty(59.9))
	assert.Equal(t, TierBeginner, RecommendedDifficulty(0))
}

func TestAdjustTier(t *testing.T) {
	assert.Equal(t, TierAdvanced, AdjustTier(TierIntermediate, 95))
	assert.Equal(t, TierBeginner, AdjustTier(TierIntermediate, 35))
	assert.Equal(t, TierIntermediate, AdjustTier(TierIntermediate, 60))
	assert.Equal(t, TierExpert, AdjustTier(TierExpert, 100))
	assert.Equal(t, TierBeginner, AdjustTier(TierBeginner, 10))
	assert.Equal(t, TierBeginner, AdjustTier(TierIntermediate, 40))
	assert.Equal(t, TierAdvanced, AdjustTier(TierIntermediate, 90))
}

func TestTierJSONAndScan(t *testing.T) {
	b, err := json.Marshal(TierAdvanced)
	require.NoError(t, err)
	assert.JSONEq(t, `"advanced"`, string(b))

	var tier Tier
	require.NoError(t, json.Unmarshal([]byte(`"expert"`), &tier))
	assert.Equal(t, TierExpert, tier)
	assert.Error(t, json.Unmarshal([]byte(`"wizard"`), &tier))

	require.NoError(t, tier.Scan([]byte("intermediate")))
	assert.Equal(t, TierIntermediate, tier)
	v, err := TierIntermediate.Value()
	require.NoError(t, err)
	assert.Equal(t, "intermediate", v)

	_, err = ParseTier("nope")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTierInsideStructsUsesNames(t *testing.T) {
	node := PathNode{ID: uuid.New(), Title: "A", Difficulty: TierAdvanced}
	b, err := json.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"difficulty":"advanced"`)

	var back PathNode
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, node, back)
}

func TestQuizQuestionValidate(t *testing.T) {
	assert.NoError(t, FallbackQuiz()[0].Validate())

	bad := QuizQuestion{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "a"}
	assert.ErrorIs(t, bad.Validate(), ErrMalformedResponse)
	assert.True(t, IsCapabilityError(bad.Validate()))
}

func TestNewContentDefaults(t *testing.T) {
	c := NewContent("t", "b", Tier(-1), uuid.New(), nil, 42)
	assert.Equal(t, TierBeginner, c.Difficulty)
	assert.Equal(t, MaxComplexity, c.ComplexityScore)
	assert.NotNil(t, c.Prerequisites)
	assert.Equal(t, MinComplexity, ClampComplexity(0))
}
