package ai

import (
	"context"
	"fmt"
	"strings"

	"gameplatform/services/path-service/internal/domain"

	"github.com/goccy/go-json"
)

const conceptInputLimit = 4000

func (c *Client) GenerateContent(ctx context.Context, topic string, difficulty domain.Tier) (domain.GeneratedContent, error) {
	prompt := fmt.Sprintf(`Write a learning module about %s for a %s learner.
Include a short title line, clear explanations, key takeaways and worked examples.
Keep the tone friendly and conversational.`, topic, difficulty)

	text, err := c.chat(ctx, "generate_content",
		"You are an expert teacher who writes engaging learning material.", prompt, 1000)
	if err != nil {
		return domain.GeneratedContent{}, err
	}
	return domain.GeneratedContent{Title: "Learning " + topic, Body: text}, nil
}

// GenerateQuiz asks for multiple-choice questions and validates every one against the
// QuizQuestion schema. A single malformed question rejects the whole response.
func (c *Client) GenerateQuiz(ctx context.Context, content string) ([]domain.QuizQuestion, error) {
	prompt := fmt.Sprintf(`Based on this content: %s
Write 5 multiple-choice questions as a JSON array. Each item has the keys
"question", "options" (exactly 4 strings), "correct_answer" and "explanation".
Return only JSON.`, content)

	text, err := c.chat(ctx, "generate_quiz",
		"You create educational assessments and always answer with valid JSON.", prompt, 1000)
	if err != nil {
		return nil, err
	}
	return parseQuiz(text)
}

func parseQuiz(text string) ([]domain.QuizQuestion, error) {
	text = stripFences(text)
	var questions []domain.QuizQuestion
	if strings.HasPrefix(text, "{") {
		var single domain.QuizQuestion
		if err := json.Unmarshal([]byte(text), &single); err != nil {
			return nil, fmt.Errorf("%w: quiz: %v", domain.ErrMalformedResponse, err)
		}
		questions = []domain.QuizQuestion{single}
	} else if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, fmt.Errorf("%w: quiz: %v", domain.ErrMalformedResponse, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz: no questions", domain.ErrMalformedResponse)
	}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

type prerequisitePayload struct {
	Prerequisites []string `json:"prerequisites"`
	Complexity    int      `json:"complexity"`
	Difficulty    string   `json:"difficulty"`
}

func (c *Client) AnalyzePrerequisites(ctx context.Context, topic string) (domain.PrerequisiteAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze this topic: %s
Answer with a JSON object with the keys "prerequisites" (array of topic names to learn first),
"complexity" (integer 1-10) and "difficulty" (beginner, intermediate, advanced or expert).
Return only JSON.`, topic)

	text, err := c.chat(ctx, "analyze_prerequisites",
		"You design curricula and learning pathways and always answer with valid JSON.", prompt, 500)
	if err != nil {
		return domain.PrerequisiteAnalysis{}, err
	}
	return parsePrerequisites(text)
}

func parsePrerequisites(text string) (domain.PrerequisiteAnalysis, error) {
	var p prerequisitePayload
	if err := json.Unmarshal([]byte(stripFences(text)), &p); err != nil {
		return domain.PrerequisiteAnalysis{}, fmt.Errorf("%w: prerequisites: %v", domain.ErrMalformedResponse, err)
	}
	tier, err := domain.ParseTier(p.Difficulty)
	if err != nil {
		tier = domain.TierBeginner
	}
	if p.Prerequisites == nil {
		p.Prerequisites = []string{}
	}
	return domain.PrerequisiteAnalysis{
		Prerequisites: p.Prerequisites,
		Complexity:    domain.ClampComplexity(p.Complexity),
		Difficulty:    tier,
	}, nil
}

func (c *Client) ExtractConcepts(ctx context.Context, texts []string) ([]string, error) {
	combined := strings.Join(texts, " ")
	if r := []rune(combined); len(r) > conceptInputLimit {
		combined = string(r[:conceptInputLimit])
	}
	text, err := c.chat(ctx, "extract_concepts",
		"Extract the key concepts from the following text. Return them as a comma-separated list.", combined, 0)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, part := range strings.Split(text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *Client) EnhanceQuery(ctx context.Context, query string) (string, error) {
	text, err := c.chat(ctx, "enhance_query",
		"Rewrite this search query for educational content search. Keep it concise.", query, 100)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
