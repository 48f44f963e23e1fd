package domain

import (
	"github.com/google/uuid"
)

type RecommendationType string

const (
	RecommendationPrerequisite RecommendationType = "prerequisite"
	RecommendationNLP          RecommendationType = "nlp"
	RecommendationTrending     RecommendationType = "trending"
	RecommendationNextLevel    RecommendationType = "next_level"
	RecommendationSimilar      RecommendationType = "similar"
)

const (
	MaxRecommendedNext = 5
	MaxNLPResults      = 5
	MaxRecommendations = 10
)

const EdgeTypePrerequisite = "prerequisite"

type PathNode struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Difficulty Tier      `json:"difficulty"`
	Completed  bool      `json:"completed"`
	Score      float64   `json:"score"`
	Complexity int       `json:"complexity,omitempty"`
}

type PathEdge struct {
	From uuid.UUID `json:"from"`
	To   uuid.UUID `json:"to"`
	Type string    `json:"type"`
}

// Recommendation is a ranked candidate from one recommendation source.
type Recommendation struct {
	ContentID  uuid.UUID          `json:"id"`
	Title      string             `json:"title"`
	Difficulty Tier               `json:"difficulty"`
	Type       RecommendationType `json:"recommendation_type"`
	Confidence float64            `json:"confidence"`
	Reason     string             `json:"reason"`
}

func RecommendationFor(c *Content, typ RecommendationType, confidence float64, reason string) Recommendation {
	return Recommendation{
		ContentID:  c.ID,
		Title:      c.Title,
		Difficulty: c.Difficulty,
		Type:       typ,
		Confidence: confidence,
		Reason:     reason,
	}
}

// LearningPathGraph is derived per request and never persisted.
type LearningPathGraph struct {
	Nodes           []PathNode       `json:"nodes"`
	Edges           []PathEdge       `json:"edges"`
	RecommendedNext []Recommendation `json:"recommended_next"`
}

type DifficultyAdjustment struct {
	CurrentTier     Tier    `json:"current_difficulty"`
	RecommendedTier Tier    `json:"recommended_difficulty"`
	Score           float64 `json:"score"`
}
