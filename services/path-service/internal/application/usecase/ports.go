package usecase

import (
	"context"

	"gameplatform/services/path-service/internal/domain"

	"github.com/google/uuid"
)

type ContentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Content, error)
	ListByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]domain.Content, error)
	ListByDifficulty(ctx context.Context, tier domain.Tier, limit int) ([]domain.Content, error)
	ListExcluding(ctx context.Context, exclude []uuid.UUID) ([]domain.Content, error)
	RandomInCategories(ctx context.Context, categoryIDs, exclude []uuid.UUID, limit int) ([]domain.Content, error)
	Trending(ctx context.Context, exclude []uuid.UUID, limit int) ([]domain.TrendingContent, error)
	Create(ctx context.Context, c *domain.Content) error
}

type ProgressStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ProgressRecord, error)
	CompletedContent(ctx context.Context, userID uuid.UUID) ([]domain.CompletedContent, error)
	TouchedCategories(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	AverageScore(ctx context.Context, userID, categoryID uuid.UUID) (float64, error)
	Upsert(ctx context.Context, rec *domain.ProgressRecord) error
}

type QuizStore interface {
	GetByContentID(ctx context.Context, contentID uuid.UUID) (*domain.Quiz, error)
	Create(ctx context.Context, q *domain.Quiz) error
}

// Capability is the AI text and embedding provider. Every call may fail; callers pick the fallback.
type Capability interface {
	Embedding(ctx context.Context, text string) ([]float32, error)
	AnalyzePrerequisites(ctx context.Context, topic string) (domain.PrerequisiteAnalysis, error)
	GenerateQuiz(ctx context.Context, content string) ([]domain.QuizQuestion, error)
	GenerateContent(ctx context.Context, topic string, difficulty domain.Tier) (domain.GeneratedContent, error)
	EnhanceQuery(ctx context.Context, query string) (string, error)
}
