package pathpb

import (
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type UserRequest struct {
	UserID string `json:"user_id"`
}

type LearningPathRequest struct {
	UserID     string `json:"user_id"`
	CategoryID string `json:"category_id"`
}

type AdjustDifficultyRequest struct {
	UserID    string  `json:"user_id"`
	ContentID string  `json:"content_id"`
	Score     float64 `json:"score"`
}

type RecommendedDifficultyRequest struct {
	UserID     string `json:"user_id"`
	CategoryID string `json:"category_id"`
}

type RecommendedDifficultyResponse struct {
	Difficulty   string  `json:"recommended_difficulty"`
	AverageScore float64 `json:"average_score"`
}

type QuizRequest struct {
	ContentID string `json:"content_id"`
}

type GenerateContentRequest struct {
	Topic      string `json:"topic"`
	CategoryID string `json:"category_id"`
}

type RecordProgressRequest struct {
	UserID    string   `json:"user_id"`
	ContentID string   `json:"content_id"`
	Score     *float64 `json:"score,omitempty"`
}

// Encode converts any JSON object shaped value into a Struct.
func Encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	s := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return s, nil
}

// Decode fills v from a Struct payload.
func Decode(s *structpb.Struct, v any) error {
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
