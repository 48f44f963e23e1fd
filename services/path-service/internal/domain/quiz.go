package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const QuizOptionCount = 4

// QuizQuestion is the tagged schema every generated question must satisfy.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: empty question", ErrMalformedResponse)
	}
	if len(q.Options) != QuizOptionCount {
		return fmt.Errorf("%w: question %q has %d options, want %d", ErrMalformedResponse, q.Question, len(q.Options), QuizOptionCount)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("%w: question %q has no correct answer", ErrMalformedResponse, q.Question)
	}
	return nil
}

// FallbackQuiz is served when quiz generation fails.
func FallbackQuiz() []QuizQuestion {
	return []QuizQuestion{{
		Question:      "What is the main topic of this content?",
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: "A",
		Explanation:   "Please try again with the content.",
	}}
}

type Quiz struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title     string    `gorm:"index" json:"title"`
	ContentID uuid.UUID `gorm:"type:uuid;index" json:"content_id"`

	Questions datatypes.JSONSlice[QuizQuestion] `json:"questions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Quiz) TableName() string { return "quizzes" }

// QuizResult is only read here: trending counts results per content.
type QuizResult struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	QuizID    uuid.UUID `gorm:"type:uuid;index"`
	Score     float64
	CreatedAt time.Time
}

func (QuizResult) TableName() string { return "quiz_results" }
