package usecase

import (
	"context"
	"fmt"
	"strings"

	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/cache"
	"gameplatform/services/path-service/internal/infrastructure/metrics"

	"github.com/google/uuid"
)

func contentKey(categoryID uuid.UUID, topic string) string {
	return cache.DigestKey("content:topic", categoryID.String()+":"+topic)
}

// GenerateContent reuses a category item whose title matches topic closely enough,
// otherwise generates, stores and returns new beginner material.
func (s *PathService) GenerateContent(ctx context.Context, topic string, categoryID uuid.UUID) (domain.ContentResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.ContentResult{}, fmt.Errorf("%w: empty topic", domain.ErrInvalidArgument)
	}
	return cache.GetOrSet(ctx, s.cache, contentKey(categoryID, topic), cache.CategoryContent, 0,
		func(ctx context.Context) (domain.ContentResult, error) {
			existing, err := s.contents.ListByCategory(ctx, categoryID)
			if err != nil {
				return domain.ContentResult{}, fmt.Errorf("list category content: %w", err)
			}
			if dup := s.findDuplicate(ctx, topic, existing); dup != nil {
				s.log.Info("reusing existing content", "topic", topic, "content_id", dup.ID)
				return domain.ContentResult{Content: dup.Summary(), Duplicate: true}, nil
			}

			gen, err := s.ai.GenerateContent(ctx, topic, domain.TierBeginner)
			if err != nil {
				return domain.ContentResult{}, fmt.Errorf("generate content: %w", err)
			}
			c := domain.NewContent(gen.Title, gen.Body, domain.TierBeginner, categoryID, nil, domain.MinComplexity)
			c.IsGenerated = true
			if err := s.contents.Create(ctx, c); err != nil {
				return domain.ContentResult{}, fmt.Errorf("store content: %w", err)
			}
			return domain.ContentResult{Content: c.Summary()}, nil
		})
}

// findDuplicate compares the search form of topic against every existing title and
// returns the closest item above the duplicate threshold.
func (s *PathService) findDuplicate(ctx context.Context, topic string, existing []domain.Content) *domain.Content {
	if len(existing) == 0 {
		return nil
	}
	query := s.searchQuery(ctx, topic)
	texts := make([]string, 0, len(existing)+1)
	texts = append(texts, query)
	for _, c := range existing {
		texts = append(texts, c.Title)
	}
	m := s.similarity.SimilarityMatrix(ctx, texts)
	if m == nil {
		return nil
	}

	best, bestSim := -1, s.duplicateThreshold
	for j := 1; j < len(texts); j++ {
		if m[0][j] > bestSim {
			best, bestSim = j-1, m[0][j]
		}
	}
	if best < 0 {
		return nil
	}
	return &existing[best]
}

// searchQuery rewrites topic for matching; the original topic is used when rewriting fails.
func (s *PathService) searchQuery(ctx context.Context, topic string) string {
	q, err := s.ai.EnhanceQuery(ctx, topic)
	if err != nil || strings.TrimSpace(q) == "" {
		if err != nil {
			s.log.Warn("query enhancement failed, using topic", "error", err)
			metrics.AIFallbacks.WithLabelValues("enhance_query").Inc()
		}
		return topic
	}
	return q
}
