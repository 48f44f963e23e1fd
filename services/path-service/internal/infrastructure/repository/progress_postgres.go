package repository

import (
	"context"
	"database/sql"

	"gameplatform/services/path-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ProgressRecord, error) {
	var records []domain.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at asc").
		Find(&records).Error
	return records, err
}

type completedRow struct {
	domain.Content `gorm:"embedded"`
	Score          float64
}

// CompletedContent returns the content a user passed, in completion order.
// The SQL threshold mirrors domain.IsCompleted: NULL scores never match.
func (r *ProgressRepository) CompletedContent(ctx context.Context, userID uuid.UUID) ([]domain.CompletedContent, error) {
	var rows []completedRow
	err := r.db.WithContext(ctx).
		Table("contents").
		Select("contents.*, user_progress.score AS score").
		Joins("JOIN user_progress ON user_progress.content_id = contents.id").
		Where("user_progress.user_id = ? AND user_progress.score >= ?", userID, domain.CompletionThreshold).
		Order("user_progress.completed_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.CompletedContent, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CompletedContent{Content: row.Content, Score: row.Score})
	}
	return out, nil
}

// TouchedCategories lists categories the user has any progress in.
func (r *ProgressRepository) TouchedCategories(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("user_progress").
		Distinct("contents.category_id").
		Joins("JOIN contents ON contents.id = user_progress.content_id").
		Where("user_progress.user_id = ?", userID).
		Pluck("contents.category_id", &ids).Error
	return ids, err
}

// AverageScore averages scored records of a user inside one category; 0 when there are none.
func (r *ProgressRepository) AverageScore(ctx context.Context, userID, categoryID uuid.UUID) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Table("user_progress").
		Select("AVG(user_progress.score)").
		Joins("JOIN contents ON contents.id = user_progress.content_id").
		Where("user_progress.user_id = ? AND contents.category_id = ?", userID, categoryID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

// Upsert writes one progress row atomically; a repeated submission overwrites the score.
func (r *ProgressRepository) Upsert(ctx context.Context, rec *domain.ProgressRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "completed_at", "updated_at"}),
	}).Create(rec).Error
}
