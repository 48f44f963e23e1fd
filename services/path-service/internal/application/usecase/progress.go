package usecase

import (
	"context"
	"fmt"
	"time"

	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/cache"

	"github.com/google/uuid"
)

func progressKey(userID uuid.UUID) string {
	return "user_progress:user:" + userID.String()
}

// RecordProgress stores the learner's latest score for contentID. A nil score marks the
// content as started but not completed.
func (s *PathService) RecordProgress(ctx context.Context, userID, contentID uuid.UUID, score *float64) (domain.ProgressView, error) {
	if score != nil && (*score < 0 || *score > 100) {
		return domain.ProgressView{}, fmt.Errorf("%w: score %.2f outside 0..100", domain.ErrInvalidArgument, *score)
	}
	if _, err := s.contents.GetByID(ctx, contentID); err != nil {
		return domain.ProgressView{}, err
	}

	rec := domain.ProgressRecord{
		UserID:      userID,
		ContentID:   contentID,
		Score:       score,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.progress.Upsert(ctx, &rec); err != nil {
		return domain.ProgressView{}, fmt.Errorf("store progress: %w", err)
	}
	return viewOf(rec), nil
}

func (s *PathService) Progress(ctx context.Context, userID uuid.UUID) ([]domain.ProgressView, error) {
	return cache.GetOrSet(ctx, s.cache, progressKey(userID), cache.CategoryUserProgress, 0,
		func(ctx context.Context) ([]domain.ProgressView, error) {
			records, err := s.progress.ListByUser(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("list progress: %w", err)
			}
			out := make([]domain.ProgressView, 0, len(records))
			for _, r := range records {
				out = append(out, viewOf(r))
			}
			return out, nil
		})
}

func viewOf(r domain.ProgressRecord) domain.ProgressView {
	return domain.ProgressView{
		ContentID:   r.ContentID,
		Score:       r.Score,
		Completed:   r.Completed(),
		CompletedAt: r.CompletedAt,
	}
}
