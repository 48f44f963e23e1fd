package repository

import (
	"context"
	"errors"
	"fmt"

	"gameplatform/services/path-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) GetByContentID(ctx context.Context, contentID uuid.UUID) (*domain.Quiz, error) {
	var q domain.Quiz
	err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at asc").
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("quiz for content %s: %w", contentID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) Create(ctx context.Context, q *domain.Quiz) error {
	return r.db.WithContext(ctx).Create(q).Error
}

// Migrate creates or updates every table the path service reads or writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Category{},
		&domain.Content{},
		&domain.ProgressRecord{},
		&domain.Quiz{},
		&domain.QuizResult{},
	)
}
