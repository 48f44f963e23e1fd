package usecase

import (
	"context"
	"fmt"
	"sort"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/cache"

	"github.com/google/uuid"
)

const (
	reasonBeginnerDefault   = "beginner default"
	reasonPatternSimilarity = "pattern-based similarity"
)

// NLPSource recommends content whose text resembles what the learner already passed.
type NLPSource struct {
	contents   ContentStore
	progress   ProgressStore
	similarity *SimilarityEngine
	cache      *cache.Manager
	threshold  float64
	log        *logger.Logger
}

func NewNLPSource(contents ContentStore, progress ProgressStore, similarity *SimilarityEngine, cm *cache.Manager, threshold float64, log *logger.Logger) *NLPSource {
	return &NLPSource{
		contents:   contents,
		progress:   progress,
		similarity: similarity,
		cache:      cm,
		threshold:  threshold,
		log:        log.With("component", "nlp"),
	}
}

func nlpKey(userID uuid.UUID) string {
	return "nlp_recommendations:user:" + userID.String()
}

// Recommend returns at most five nlp candidates for userID.
func (s *NLPSource) Recommend(ctx context.Context, userID uuid.UUID) ([]domain.Recommendation, error) {
	return cache.GetOrSet(ctx, s.cache, nlpKey(userID), cache.CategoryRecommendations, 0,
		func(ctx context.Context) ([]domain.Recommendation, error) {
			return s.compute(ctx, userID)
		})
}

func (s *NLPSource) compute(ctx context.Context, userID uuid.UUID) ([]domain.Recommendation, error) {
	done, err := s.progress.CompletedContent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("completed content: %w", err)
	}
	if len(done) == 0 {
		return s.beginnerDefaults(ctx)
	}

	refs := make([]string, 0, len(done))
	exclude := make([]uuid.UUID, 0, len(done))
	for _, d := range done {
		refs = append(refs, d.Content.Body)
		exclude = append(exclude, d.Content.ID)
	}
	refVecs, err := s.similarity.Embed(ctx, refs)
	if err != nil {
		s.log.Warn("reference embeddings failed, no nlp candidates", "user_id", userID, "error", err)
		return []domain.Recommendation{}, nil
	}

	candidates, err := s.contents.ListExcluding(ctx, exclude)
	if err != nil {
		return nil, fmt.Errorf("candidate content: %w", err)
	}

	type scored struct {
		content *domain.Content
		sim     float64
	}
	var kept []scored
	for i := range candidates {
		c := &candidates[i]
		if c.ID == uuid.Nil {
			continue
		}
		sim := s.similarity.meanAgainst(ctx, c.Body, refVecs)
		if sim > s.threshold {
			kept = append(kept, scored{content: c, sim: sim})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].sim > kept[j].sim })
	if len(kept) > domain.MaxNLPResults {
		kept = kept[:domain.MaxNLPResults]
	}

	out := make([]domain.Recommendation, 0, len(kept))
	for _, k := range kept {
		out = append(out, domain.RecommendationFor(k.content, domain.RecommendationNLP, clampUnit(k.sim), reasonPatternSimilarity))
	}
	return out, nil
}

func (s *NLPSource) beginnerDefaults(ctx context.Context) ([]domain.Recommendation, error) {
	items, err := s.contents.ListByDifficulty(ctx, domain.TierBeginner, domain.MaxNLPResults)
	if err != nil {
		return nil, fmt.Errorf("beginner content: %w", err)
	}
	out := make([]domain.Recommendation, 0, len(items))
	for i := range items {
		if items[i].ID == uuid.Nil {
			continue
		}
		out = append(out, domain.RecommendationFor(&items[i], domain.RecommendationNLP, 1.0, reasonBeginnerDefault))
	}
	return out, nil
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
