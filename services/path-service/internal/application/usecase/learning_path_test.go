package usecase

import (
	"context"
	"testing"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeByID(g domain.LearningPathGraph, id uuid.UUID) (domain.PathNode, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.PathNode{}, false
}

func nextIDs(g domain.LearningPathGraph) []uuid.UUID {
	return recIDs(g.RecommendedNext)
}

func recIDs(recs []domain.Recommendation) []uuid.UUID {
	var ids []uuid.UUID
	for _, r := range recs {
		ids = append(ids, r.ContentID)
	}
	return ids
}

func TestLearningPathNoProgress(t *testing.T) {
	f := newFixture(nil)
	cat, user := uuid.New(), uuid.New()
	a := f.contents.add("A", "intro", domain.TierBeginner, cat)
	b := f.contents.add("B", "next", domain.TierIntermediate, cat, a.ID)

	g, err := f.svc.GenerateLearningPath(context.Background(), user, cat)
	require.NoError(t, err)

	na, _ := nodeByID(g, a.ID)
	nb, _ := nodeByID(g, b.ID)
	assert.False(t, na.Completed)
	assert.False(t, nb.Completed)
	assert.Equal(t, []domain.PathEdge{{From: a.ID, To: b.ID, Type: domain.EdgeTypePrerequisite}}, g.Edges)

	require.Len(t, g.RecommendedNext, 1)
	assert.Equal(t, a.ID, g.RecommendedNext[0].ContentID)
	assert.Equal(t, domain.RecommendationPrerequisite, g.RecommendedNext[0].Type)
	assert.Equal(t, 1.0, g.RecommendedNext[0].Confidence)
	assert.Zero(t, f.progress.completedCalls.Load(), "nlp source must be skipped without completed content")
}

func TestLearningPathPrerequisitePassed(t *testing.T) {
	f := newFixture(nil)
	cat, user := uuid.New(), uuid.New()
	a := f.contents.add("A", "intro", domain.TierBeginner, cat)
	b := f.contents.add("B", "next", domain.TierIntermediate, cat, a.ID)
	f.progress.score(user, a.ID, ptr(85))

	g, err := f.svc.GenerateLearningPath(context.Background(), user, cat)
	require.NoError(t, err)

	na, _ := nodeByID(g, a.ID)
	assert.True(t, na.Completed)
	assert.Equal(t, 85.0, na.Score)
	assert.Contains(t, nextIDs(g), b.ID)
	assert.NotContains(t, nextIDs(g), a.ID)
}

func TestLearningPathSkipsCompletedNLPCandidates(t *testing.T) {
	f := newFixture(newCache(t))
	ctx := context.Background()
	cat, user := uuid.New(), uuid.New()
	a := f.contents.add("A", "intro", domain.TierBeginner, cat)
	b := f.contents.add("B", "next", domain.TierIntermediate, cat, a.ID)

	// beginner defaults are cached while the learner has no progress
	defaults, err := f.svc.NLPRecommendations(ctx, user)
	require.NoError(t, err)
	require.Contains(t, recIDs(defaults), a.ID)

	_, err = f.svc.RecordProgress(ctx, user, a.ID, ptr(85))
	require.NoError(t, err)

	g, err := f.svc.GenerateLearningPath(ctx, user, cat)
	require.NoError(t, err)
	assert.Contains(t, nextIDs(g), b.ID)
	assert.NotContains(t, nextIDs(g), a.ID, "completed content must not be recommended")
}

func TestLearningPathCompletionBoundary(t *testing.T) {
	f := newFixture(nil)
	cat, user := uuid.New(), uuid.New()
	a := f.contents.add("A", "intro", domain.TierBeginner, cat)
	b := f.contents.add("B", "more", domain.TierBeginner, cat)
	c := f.contents.add("C", "untouched", domain.TierBeginner, cat)
	f.progress.score(user, a.ID, ptr(70))
	f.progress.score(user, b.ID, ptr(69.999))
	f.progress.score(user, c.ID, nil)

	g, err := f.svc.GenerateLearningPath(context.Background(), user, cat)
	require.NoError(t, err)

	na, _ := nodeByID(g, a.ID)
	nb, _ := nodeByID(g, b.ID)
	nc, _ := nodeByID(g, c.ID)
	assert.True(t, na.Completed)
	assert.False(t, nb.Completed)
	assert.Zero(t, nb.Score)
	assert.False(t, nc.Completed, "missing score is never completed")
}

func TestGraphSkipsForeignAndDuplicateEdges(t *testing.T) {
	f := newFixture(nil)
	cat, user := uuid.New(), uuid.New()
	foreign := f.contents.add("Elsewhere", "", domain.TierBeginner, uuid.New())
	a := f.contents.add("A", "", domain.TierBeginner, cat)
	b := f.contents.add("B", "", domain.TierBeginner, cat, a.ID, a.ID, foreign.ID)
	f.contents.items = append(f.contents.items, domain.Content{Title: "broken", CategoryID: cat})

	g, _, err := f.svc.graph.Build(context.Background(), cat, user)
	require.NoError(t, err)

	assert.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, a.ID, g.Edges[0].From)
	assert.Equal(t, b.ID, g.Edges[0].To)

	ids := map[uuid.UUID]bool{}
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	for _, e := range g.Edges {
		assert.True(t, ids[e.From] && ids[e.To], "edge endpoints must be nodes")
	}
}

func TestGraphSelfPrerequisiteIsIgnored(t *testing.T) {
	f := newFixture(nil)
	cat, user := uuid.New(), uuid.New()
	a := f.contents.add("A", "", domain.TierBeginner, cat)
	f.contents.items[0].Prerequisites = append(f.contents.items[0].Prerequisites, a.ID)

	g, err := f.svc.GenerateLearningPath(context.Background(), user, cat)
	require.NoError(t, err)

	assert.Empty(t, g.Edges)
	assert.Equal(t, []uuid.UUID{a.ID}, nextIDs(g), "a self reference does not block the item")
}

func TestGraphAnalysisComplexityAndFallback(t *testing.T) {
	f := newFixture(nil)
	cat := uuid.New()
	a := f.contents.add("A", "", domain.TierBeginner, cat)

	g, _, err := f.svc.graph.Build(context.Background(), cat, uuid.New())
	require.NoError(t, err)
	n, _ := nodeByID(g, a.ID)
	assert.Equal(t, 4, n.Complexity)

	f.ai.analyzeErr = domain.ErrCapabilityFailure
	g, _, err = f.svc.graph.Build(context.Background(), cat, uuid.New())
	require.NoError(t, err)
	n, _ = nodeByID(g, a.ID)
	assert.Equal(t, domain.MinComplexity, n.Complexity)
}

func TestGraphStoreErrorsPropagate(t *testing.T) {
	f := newFixture(nil)
	f.contents.listErr = errStore
	_, err := f.svc.GenerateLearningPath(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, errStore)

	f.contents.listErr = nil
	f.progress.listErr = errStore
	_, err = f.svc.GenerateLearningPath(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, errStore)
}

func TestLearningPathCacheTransparency(t *testing.T) {
	f := newFixture(nil)
	cat, user := uuid.New(), uuid.New()
	a := f.contents.add("A", "intro", domain.TierBeginner, cat)
	f.contents.add("B", "next", domain.TierAdvanced, cat, a.ID)
	f.progress.score(user, a.ID, ptr(85))
	f.ai.vectors["intro"] = []float32{1, 0, 0, 0}
	f.ai.vectors["next"] = []float32{0, 1, 0, 0}

	cached := NewPathService(f.contents, f.progress, f.quizzes, f.ai, newCache(t), testOptions(), logger.NewNop())

	want, err := f.svc.GenerateLearningPath(context.Background(), user, cat)
	require.NoError(t, err)
	first, err := cached.GenerateLearningPath(context.Background(), user, cat)
	require.NoError(t, err)
	second, err := cached.GenerateLearningPath(context.Background(), user, cat)
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
}
