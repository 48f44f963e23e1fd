package usecase

import (
	"context"
	"fmt"

	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/cache"
	"gameplatform/services/path-service/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	confidenceNextLevel = 0.9
	confidenceSimilar   = 0.6
	confidenceTrending  = 0.5

	sourceSampleSize = 5
)

func recommendationsKey(userID uuid.UUID) string {
	return "recommendations:user:" + userID.String()
}

// Recommendations is the broad, at most ten entry list. Sources are concatenated in
// next_level, similar, trending order without cross-source dedup.
func (a *Aggregator) Recommendations(ctx context.Context, userID uuid.UUID) ([]domain.Recommendation, error) {
	return cache.GetOrSet(ctx, a.cache, recommendationsKey(userID), cache.CategoryRecommendations, 0,
		func(ctx context.Context) ([]domain.Recommendation, error) {
			return a.computeRecommendations(ctx, userID)
		})
}

type recommendationSource struct {
	name domain.RecommendationType
	run  func(ctx context.Context, userID uuid.UUID, done []domain.CompletedContent) ([]domain.Recommendation, error)
}

func (a *Aggregator) computeRecommendations(ctx context.Context, userID uuid.UUID) ([]domain.Recommendation, error) {
	done, err := a.progress.CompletedContent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("completed content: %w", err)
	}

	sources := []recommendationSource{
		{name: domain.RecommendationNextLevel, run: a.nextLevel},
		{name: domain.RecommendationSimilar, run: a.similar},
		{name: domain.RecommendationTrending, run: a.trending},
	}
	results := make([][]domain.Recommendation, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			recs, err := src.run(ctx, userID, done)
			if err != nil {
				a.log.Warn("recommendation source failed", "source", src.name, "user_id", userID, "error", err)
				metrics.RecommendationSourceFailures.WithLabelValues(string(src.name)).Inc()
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.Recommendation, 0, domain.MaxRecommendations)
	for _, recs := range results {
		out = append(out, recs...)
	}
	if len(out) > domain.MaxRecommendations {
		out = out[:domain.MaxRecommendations]
	}
	return out, nil
}

func completedIDs(done []domain.CompletedContent) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(done))
	for _, d := range done {
		ids = append(ids, d.Content.ID)
	}
	return ids
}

// nextLevel offers content harder than the best tier passed in each category.
func (a *Aggregator) nextLevel(ctx context.Context, _ uuid.UUID, done []domain.CompletedContent) ([]domain.Recommendation, error) {
	if len(done) == 0 {
		return nil, nil
	}
	best := make(map[uuid.UUID]domain.Tier)
	passed := make(map[uuid.UUID]struct{}, len(done))
	for _, d := range done {
		passed[d.Content.ID] = struct{}{}
		if t, ok := best[d.Content.CategoryID]; !ok || d.Content.Difficulty > t {
			best[d.Content.CategoryID] = d.Content.Difficulty
		}
	}
	categories := make([]uuid.UUID, 0, len(best))
	for id := range best {
		categories = append(categories, id)
	}

	items, err := a.contents.ListByCategories(ctx, categories)
	if err != nil {
		return nil, err
	}
	var out []domain.Recommendation
	for i := range items {
		c := &items[i]
		if _, ok := passed[c.ID]; ok || c.ID == uuid.Nil {
			continue
		}
		if c.Difficulty > best[c.CategoryID] {
			out = append(out, domain.RecommendationFor(c, domain.RecommendationNextLevel, confidenceNextLevel,
				"Next difficulty level based on your progress"))
		}
	}
	return out, nil
}

func (a *Aggregator) similar(ctx context.Context, userID uuid.UUID, done []domain.CompletedContent) ([]domain.Recommendation, error) {
	categories, err := a.progress.TouchedCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := a.contents.RandomInCategories(ctx, categories, completedIDs(done), sourceSampleSize)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Recommendation, 0, len(items))
	for i := range items {
		out = append(out, domain.RecommendationFor(&items[i], domain.RecommendationSimilar, confidenceSimilar,
			"Similar to topics you've enjoyed"))
	}
	return out, nil
}

func (a *Aggregator) trending(ctx context.Context, _ uuid.UUID, done []domain.CompletedContent) ([]domain.Recommendation, error) {
	items, err := a.contents.Trending(ctx, completedIDs(done), sourceSampleSize)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Recommendation, 0, len(items))
	for i := range items {
		out = append(out, domain.RecommendationFor(&items[i].Content, domain.RecommendationTrending, confidenceTrending,
			fmt.Sprintf("Popular among learners (%d completions)", items[i].Popularity)))
	}
	return out, nil
}
