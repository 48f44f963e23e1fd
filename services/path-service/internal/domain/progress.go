package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompletionThreshold is the minimum score at which content counts as completed.
const CompletionThreshold = 70.0

// IsCompleted is the single completion predicate: a score must be present and at least 70.
// A record without a score is in progress, never completed.
func IsCompleted(score *float64) bool {
	return score != nil && *score >= CompletionThreshold
}

type ProgressRecord struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	ContentID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Score       *float64
	CompletedAt time.Time
	UpdatedAt   time.Time
}

func (ProgressRecord) TableName() string { return "user_progress" }

func (r ProgressRecord) Completed() bool { return IsCompleted(r.Score) }

// CompletedScores builds the contentId -> score map of completed records.
func CompletedScores(records []ProgressRecord) map[uuid.UUID]float64 {
	out := make(map[uuid.UUID]float64, len(records))
	for _, r := range records {
		if r.ContentID == uuid.Nil || !r.Completed() {
			continue
		}
		out[r.ContentID] = *r.Score
	}
	return out
}

// CompletedContent pairs a passed progress record with the content it refers to.
type CompletedContent struct {
	Content Content
	Score   float64
}

// ProgressView is the cached per-user progress listing.
type ProgressView struct {
	ContentID   uuid.UUID `json:"content_id"`
	Score       *float64  `json:"score,omitempty"`
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completed_at"`
}
