package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string     `gorm:"uniqueIndex"`
	Description string
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Content is a unit of learning material. The catalog owns it; the path service only reads it,
// except for AI-generated items it persists itself.
type Content struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title      string    `gorm:"index"`
	Body       string    `gorm:"type:text"`
	Difficulty Tier      `gorm:"type:varchar(16);index;default:'beginner'"`
	CategoryID uuid.UUID `gorm:"type:uuid;index"`

	// Ids of content that should be completed first, in order.
	Prerequisites   datatypes.JSONSlice[uuid.UUID]
	ComplexityScore int  `gorm:"default:1"`
	IsGenerated     bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Content) TableName() string { return "contents" }

const (
	MinComplexity = 1
	MaxComplexity = 10
)

// ClampComplexity forces a complexity score into 1..10.
func ClampComplexity(c int) int {
	if c < MinComplexity {
		return MinComplexity
	}
	if c > MaxComplexity {
		return MaxComplexity
	}
	return c
}

func NewContent(title, body string, difficulty Tier, categoryID uuid.UUID, prerequisites []uuid.UUID, complexity int) *Content {
	if !difficulty.Valid() {
		difficulty = TierBeginner
	}
	if prerequisites == nil {
		prerequisites = []uuid.UUID{}
	}
	return &Content{
		ID:              uuid.New(),
		Title:           title,
		Body:            body,
		Difficulty:      difficulty,
		CategoryID:      categoryID,
		Prerequisites:   datatypes.NewJSONSlice(prerequisites),
		ComplexityScore: ClampComplexity(complexity),
	}
}

// TrendingContent is content ranked by how many quiz results it has collected.
type TrendingContent struct {
	Content    `gorm:"embedded"`
	Popularity int64
}

// PrerequisiteAnalysis is the AI capability's view of what a topic depends on.
type PrerequisiteAnalysis struct {
	Prerequisites []string `json:"prerequisites"`
	Complexity    int      `json:"complexity"`
	Difficulty    Tier     `json:"difficulty"`
}

// DefaultPrerequisiteAnalysis is substituted whenever the capability fails.
func DefaultPrerequisiteAnalysis() PrerequisiteAnalysis {
	return PrerequisiteAnalysis{Prerequisites: []string{}, Complexity: MinComplexity, Difficulty: TierBeginner}
}

// GeneratedContent is the raw output of the content generation capability.
type GeneratedContent struct {
	Title string `json:"title"`
	Body  string `json:"content"`
}

// ContentResult is returned by content generation; Duplicate is set when an existing item was reused.
type ContentResult struct {
	Content   ContentSummary `json:"content"`
	Duplicate bool           `json:"is_duplicate"`
}

type ContentSummary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Difficulty Tier      `json:"difficulty"`
	CategoryID uuid.UUID `json:"category_id"`
}

func (c *Content) Summary() ContentSummary {
	return ContentSummary{
		ID:         c.ID,
		Title:      c.Title,
		Body:       c.Body,
		Difficulty: c.Difficulty,
		CategoryID: c.CategoryID,
	}
}
