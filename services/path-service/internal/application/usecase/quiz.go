package usecase

import (
	"context"
	"errors"
	"fmt"

	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/cache"
	"gameplatform/services/path-service/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func quizKey(contentID uuid.UUID) string {
	return "quiz:content:" + contentID.String()
}

// GetQuiz returns the stored quiz for contentID, generating and persisting one on first request.
func (s *PathService) GetQuiz(ctx context.Context, contentID uuid.UUID) (domain.Quiz, error) {
	return cache.GetOrSet(ctx, s.cache, quizKey(contentID), cache.CategoryQuiz, 0,
		func(ctx context.Context) (domain.Quiz, error) {
			existing, err := s.quizzes.GetByContentID(ctx, contentID)
			if err == nil {
				return *existing, nil
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return domain.Quiz{}, err
			}

			content, err := s.contents.GetByID(ctx, contentID)
			if err != nil {
				return domain.Quiz{}, err
			}
			questions, err := s.ai.GenerateQuiz(ctx, content.Body)
			if err != nil {
				s.log.Warn("quiz generation failed, using fallback", "content_id", contentID, "error", err)
				metrics.AIFallbacks.WithLabelValues("generate_quiz").Inc()
				questions = domain.FallbackQuiz()
			}

			quiz := domain.Quiz{
				ID:        uuid.New(),
				Title:     "Quiz: " + content.Title,
				ContentID: contentID,
				Questions: datatypes.NewJSONSlice(questions),
			}
			if err := s.quizzes.Create(ctx, &quiz); err != nil {
				return domain.Quiz{}, fmt.Errorf("store quiz: %w", err)
			}
			return quiz, nil
		})
}
