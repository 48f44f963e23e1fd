package usecase

import (
	"context"
	"errors"
	"fmt"

	"gameplatform/services/path-service/internal/domain"

	"github.com/google/uuid"
)

// AdjustContentDifficulty suggests the tier to study after scoring on contentID.
// Unknown content is treated as beginner.
func (s *PathService) AdjustContentDifficulty(ctx context.Context, userID, contentID uuid.UUID, score float64) (domain.DifficultyAdjustment, error) {
	if score < 0 || score > 100 {
		return domain.DifficultyAdjustment{}, fmt.Errorf("%w: score %.2f outside 0..100", domain.ErrInvalidArgument, score)
	}
	current := domain.TierBeginner
	c, err := s.contents.GetByID(ctx, contentID)
	switch {
	case err == nil:
		current = c.Difficulty
	case errors.Is(err, domain.ErrNotFound):
		s.log.Debug("difficulty adjustment for unknown content", "user_id", userID, "content_id", contentID)
	default:
		return domain.DifficultyAdjustment{}, err
	}
	if !current.Valid() {
		current = domain.TierBeginner
	}
	return domain.DifficultyAdjustment{
		CurrentTier:     current,
		RecommendedTier: domain.AdjustTier(current, score),
		Score:           score,
	}, nil
}

// RecommendedDifficulty maps the learner's average score in a category to a starting tier.
func (s *PathService) RecommendedDifficulty(ctx context.Context, userID, categoryID uuid.UUID) (domain.Tier, float64, error) {
	avg, err := s.progress.AverageScore(ctx, userID, categoryID)
	if err != nil {
		return domain.TierBeginner, 0, fmt.Errorf("average score: %w", err)
	}
	return domain.RecommendedDifficulty(avg), avg, nil
}
