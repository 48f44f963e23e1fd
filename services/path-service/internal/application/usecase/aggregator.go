package usecase

import (
	"context"
	"sort"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/cache"
	"gameplatform/services/path-service/internal/infrastructure/metrics"

	"github.com/google/uuid"
)

const reasonPrerequisitesMet = "all prerequisites completed"

type nlpRecommender interface {
	Recommend(ctx context.Context, userID uuid.UUID) ([]domain.Recommendation, error)
}

// Aggregator merges recommendation sources into ranked lists.
type Aggregator struct {
	contents ContentStore
	progress ProgressStore
	nlp      nlpRecommender
	cache    *cache.Manager
	log      *logger.Logger
}

func NewAggregator(contents ContentStore, progress ProgressStore, nlp nlpRecommender, cm *cache.Manager, log *logger.Logger) *Aggregator {
	return &Aggregator{
		contents: contents,
		progress: progress,
		nlp:      nlp,
		cache:    cm,
		log:      log.With("component", "aggregator"),
	}
}

// RecommendNext ranks at most five next steps for a built graph. Nodes whose prerequisites are
// all completed come first; nlp candidates only fill in ids not already seen and never
// bring back completed content.
func (a *Aggregator) RecommendNext(ctx context.Context, userID uuid.UUID, graph domain.LearningPathGraph, completed map[uuid.UUID]float64) []domain.Recommendation {
	merged := availableNodes(graph, completed)

	if len(completed) > 0 {
		extra, err := a.nlp.Recommend(ctx, userID)
		if err != nil {
			a.log.Warn("nlp source failed", "user_id", userID, "error", err)
			metrics.RecommendationSourceFailures.WithLabelValues(string(domain.RecommendationNLP)).Inc()
		}
		for _, r := range extra {
			// nlp results may be cached from before the latest progress
			if _, done := completed[r.ContentID]; done {
				continue
			}
			merged = append(merged, r)
		}
	}

	out := dedupe(merged)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	if len(out) > domain.MaxRecommendedNext {
		out = out[:domain.MaxRecommendedNext]
	}
	return out
}

// availableNodes lists uncompleted nodes whose incoming edges all start at completed content.
func availableNodes(graph domain.LearningPathGraph, completed map[uuid.UUID]float64) []domain.Recommendation {
	incoming := make(map[uuid.UUID][]uuid.UUID)
	for _, e := range graph.Edges {
		incoming[e.To] = append(incoming[e.To], e.From)
	}

	var out []domain.Recommendation
	for _, n := range graph.Nodes {
		if _, done := completed[n.ID]; done {
			continue
		}
		ready := true
		for _, from := range incoming[n.ID] {
			if _, ok := completed[from]; !ok {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		out = append(out, domain.Recommendation{
			ContentID:  n.ID,
			Title:      n.Title,
			Difficulty: n.Difficulty,
			Type:       domain.RecommendationPrerequisite,
			Confidence: 1.0,
			Reason:     reasonPrerequisitesMet,
		})
	}
	return out
}

// dedupe keeps the first entry for each content id.
func dedupe(in []domain.Recommendation) []domain.Recommendation {
	seen := make(map[uuid.UUID]struct{}, len(in))
	out := make([]domain.Recommendation, 0, len(in))
	for _, r := range in {
		if _, ok := seen[r.ContentID]; ok {
			continue
		}
		seen[r.ContentID] = struct{}{}
		out = append(out, r)
	}
	return out
}
