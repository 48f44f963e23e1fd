package usecase

import (
	"context"
	"fmt"
	"time"

	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/cache"
	"gameplatform/services/path-service/internal/infrastructure/metrics"

	"github.com/google/uuid"
)

func learningPathKey(userID, categoryID uuid.UUID) string {
	return fmt.Sprintf("learning_path:user:%s:category:%s", userID, categoryID)
}

func (s *PathService) GenerateLearningPath(ctx context.Context, userID, categoryID uuid.UUID) (domain.LearningPathGraph, error) {
	return cache.GetOrSet(ctx, s.cache, learningPathKey(userID, categoryID), cache.CategoryLearningPath, 0,
		func(ctx context.Context) (domain.LearningPathGraph, error) {
			start := time.Now()
			defer func() { metrics.PathBuildDuration.Observe(time.Since(start).Seconds()) }()

			graph, completed, err := s.graph.Build(ctx, categoryID, userID)
			if err != nil {
				return domain.LearningPathGraph{}, err
			}
			graph.RecommendedNext = s.aggregator.RecommendNext(ctx, userID, graph, completed)
			s.log.Info("learning path built",
				"user_id", userID, "category_id", categoryID,
				"nodes", len(graph.Nodes), "edges", len(graph.Edges), "next", len(graph.RecommendedNext))
			return graph, nil
		})
}

func (s *PathService) Recommendations(ctx context.Context, userID uuid.UUID) ([]domain.Recommendation, error) {
	return s.aggregator.Recommendations(ctx, userID)
}

func (s *PathService) NLPRecommendations(ctx context.Context, userID uuid.UUID) ([]domain.Recommendation, error) {
	return s.nlp.Recommend(ctx, userID)
}
