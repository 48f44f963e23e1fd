package repository

import (
	"context"
	"errors"
	"fmt"

	"gameplatform/services/path-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	var c domain.Content
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByCategory returns a category's content in a stable order so repeated builds match.
func (r *ContentRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Content, error) {
	var items []domain.Content
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at asc, id asc").
		Find(&items).Error
	return items, err
}

func (r *ContentRepository) ListByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]domain.Content, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var items []domain.Content
	err := r.db.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("created_at asc, id asc").
		Find(&items).Error
	return items, err
}

func (r *ContentRepository) ListByDifficulty(ctx context.Context, tier domain.Tier, limit int) ([]domain.Content, error) {
	var items []domain.Content
	err := r.db.WithContext(ctx).
		Where("difficulty = ?", tier.String()).
		Order("created_at asc, id asc").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// ListExcluding returns every content item whose id is not in exclude.
func (r *ContentRepository) ListExcluding(ctx context.Context, exclude []uuid.UUID) ([]domain.Content, error) {
	var items []domain.Content
	err := excluding(r.db.WithContext(ctx), "id", exclude).
		Order("created_at asc, id asc").
		Find(&items).Error
	return items, err
}

// RandomInCategories samples up to limit items from the given categories.
func (r *ContentRepository) RandomInCategories(ctx context.Context, categoryIDs, exclude []uuid.UUID, limit int) ([]domain.Content, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var items []domain.Content
	err := excluding(r.db.WithContext(ctx), "id", exclude).
		Where("category_id IN ?", categoryIDs).
		Order("random()").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *ContentRepository) Trending(ctx context.Context, exclude []uuid.UUID, limit int) ([]domain.TrendingContent, error) {
	var rows []domain.TrendingContent
	q := r.db.WithContext(ctx).
		Table("contents").
		Select("contents.*, COUNT(quiz_results.id) AS popularity").
		Joins("JOIN quizzes ON quizzes.content_id = contents.id").
		Joins("JOIN quiz_results ON quiz_results.quiz_id = quizzes.id")
	err := excluding(q, "contents.id", exclude).
		Group("contents.id").
		Order("popularity desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *ContentRepository) Create(ctx context.Context, c *domain.Content) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// excluding adds "column NOT IN ?" only for a non-empty list; an empty IN list would
// otherwise filter out every row.
func excluding(q *gorm.DB, column string, ids []uuid.UUID) *gorm.DB {
	if len(ids) == 0 {
		return q
	}
	return q.Where(column+" NOT IN ?", ids)
}
