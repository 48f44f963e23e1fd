package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store down")

type fakeContents struct {
	mu       sync.Mutex
	items    []domain.Content
	trending []domain.TrendingContent

	listErr     error
	trendingErr error
	randomErr   error
	created     []domain.Content
}

func (f *fakeContents) add(title, body string, tier domain.Tier, category uuid.UUID, prereqs ...uuid.UUID) domain.Content {
	c := domain.NewContent(title, body, tier, category, prereqs, 1)
	f.items = append(f.items, *c)
	return *c
}

func (f *fakeContents) GetByID(_ context.Context, id uuid.UUID) (*domain.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			c := f.items[i]
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeContents) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]domain.Content, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Content
	for _, c := range f.items {
		if c.CategoryID == categoryID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContents) ListByCategories(_ context.Context, categoryIDs []uuid.UUID) ([]domain.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Content
	for _, c := range f.items {
		if containsID(categoryIDs, c.CategoryID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContents) ListByDifficulty(_ context.Context, tier domain.Tier, limit int) ([]domain.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Content
	for _, c := range f.items {
		if c.Difficulty == tier && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContents) ListExcluding(_ context.Context, exclude []uuid.UUID) ([]domain.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Content
	for _, c := range f.items {
		if !containsID(exclude, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContents) RandomInCategories(_ context.Context, categoryIDs, exclude []uuid.UUID, limit int) ([]domain.Content, error) {
	if f.randomErr != nil {
		return nil, f.randomErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Content
	for _, c := range f.items {
		if containsID(categoryIDs, c.CategoryID) && !containsID(exclude, c.ID) && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContents) Trending(_ context.Context, exclude []uuid.UUID, limit int) ([]domain.TrendingContent, error) {
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	var out []domain.TrendingContent
	for _, t := range f.trending {
		if !containsID(exclude, t.ID) && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeContents) Create(_ context.Context, c *domain.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, *c)
	f.created = append(f.created, *c)
	return nil
}

type fakeProgress struct {
	mu       sync.Mutex
	contents *fakeContents
	records  []domain.ProgressRecord

	listErr        error
	completedErr   error
	completedCalls atomic.Int32
}

func (f *fakeProgress) score(user, content uuid.UUID, score *float64) {
	f.records = append(f.records, domain.ProgressRecord{UserID: user, ContentID: content, Score: score, CompletedAt: time.Now()})
}

func (f *fakeProgress) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.ProgressRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ProgressRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgress) CompletedContent(ctx context.Context, userID uuid.UUID) ([]domain.CompletedContent, error) {
	f.completedCalls.Add(1)
	if f.completedErr != nil {
		return nil, f.completedErr
	}
	records, _ := f.ListByUser(ctx, userID)
	var out []domain.CompletedContent
	for _, r := range records {
		if !r.Completed() {
			continue
		}
		c, err := f.contents.GetByID(ctx, r.ContentID)
		if err != nil {
			continue
		}
		out = append(out, domain.CompletedContent{Content: *c, Score: *r.Score})
	}
	return out, nil
}

func (f *fakeProgress) TouchedCategories(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	records, _ := f.ListByUser(ctx, userID)
	var out []uuid.UUID
	for _, r := range records {
		c, err := f.contents.GetByID(ctx, r.ContentID)
		if err == nil && !containsID(out, c.CategoryID) {
			out = append(out, c.CategoryID)
		}
	}
	return out, nil
}

func (f *fakeProgress) AverageScore(ctx context.Context, userID, categoryID uuid.UUID) (float64, error) {
	records, _ := f.ListByUser(ctx, userID)
	var sum float64
	var n int
	for _, r := range records {
		c, err := f.contents.GetByID(ctx, r.ContentID)
		if err != nil || c.CategoryID != categoryID || r.Score == nil {
			continue
		}
		sum += *r.Score
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (f *fakeProgress) Upsert(_ context.Context, rec *domain.ProgressRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].UserID == rec.UserID && f.records[i].ContentID == rec.ContentID {
			f.records[i] = *rec
			return nil
		}
	}
	f.records = append(f.records, *rec)
	return nil
}

type fakeQuizzes struct {
	mu      sync.Mutex
	quizzes []domain.Quiz
}

func (f *fakeQuizzes) GetByContentID(_ context.Context, contentID uuid.UUID) (*domain.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.quizzes {
		if f.quizzes[i].ContentID == contentID {
			q := f.quizzes[i]
			return &q, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeQuizzes) Create(_ context.Context, q *domain.Quiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quizzes = append(f.quizzes, *q)
	return nil
}

// fakeAI embeds known texts to fixed vectors; anything else maps to a vector orthogonal to all of them.
type fakeAI struct {
	mu         sync.Mutex
	vectors    map[string][]float32
	embedErr   error
	embedCalls atomic.Int32
	embedded   []string

	analysis   domain.PrerequisiteAnalysis
	analyzeErr error
	quiz       []domain.QuizQuestion
	quizErr    error
	enhanceErr error
	genErr     error
}

func newFakeAI() *fakeAI {
	return &fakeAI{vectors: map[string][]float32{}, analysis: domain.PrerequisiteAnalysis{Complexity: 4, Difficulty: domain.TierBeginner}}
}

func (f *fakeAI) Embedding(_ context.Context, text string) ([]float32, error) {
	f.embedCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedded = append(f.embedded, text)
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 0, 1}, nil
}

func (f *fakeAI) AnalyzePrerequisites(context.Context, string) (domain.PrerequisiteAnalysis, error) {
	if f.analyzeErr != nil {
		return domain.PrerequisiteAnalysis{}, f.analyzeErr
	}
	return f.analysis, nil
}

func (f *fakeAI) GenerateQuiz(context.Context, string) ([]domain.QuizQuestion, error) {
	if f.quizErr != nil {
		return nil, f.quizErr
	}
	return f.quiz, nil
}

func (f *fakeAI) GenerateContent(_ context.Context, topic string, _ domain.Tier) (domain.GeneratedContent, error) {
	if f.genErr != nil {
		return domain.GeneratedContent{}, f.genErr
	}
	return domain.GeneratedContent{Title: "Learning " + topic, Body: "all about " + topic}, nil
}

func (f *fakeAI) EnhanceQuery(_ context.Context, q string) (string, error) {
	if f.enhanceErr != nil {
		return "", f.enhanceErr
	}
	return q, nil
}

type memBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemBackend() *memBackend { return &memBackend{data: map[string][]byte{}} }

func (b *memBackend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (b *memBackend) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
	return nil
}

func (b *memBackend) Ping(context.Context) error { return nil }
func (b *memBackend) Close() error               { return nil }

func newCache(t *testing.T) *cache.Manager {
	t.Helper()
	m := cache.NewManager(newMemBackend(), nil, logger.NewNop())
	require.NoError(t, m.Init(context.Background()))
	return m
}

type fixture struct {
	contents *fakeContents
	progress *fakeProgress
	quizzes  *fakeQuizzes
	ai       *fakeAI
	svc      *PathService
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Retry = RetryPolicy{Attempts: 3, Initial: time.Millisecond, Max: 2 * time.Millisecond}
	return opts
}

func newFixture(cm *cache.Manager) *fixture {
	contents := &fakeContents{}
	f := &fixture{
		contents: contents,
		progress: &fakeProgress{contents: contents},
		quizzes:  &fakeQuizzes{},
		ai:       newFakeAI(),
	}
	f.svc = NewPathService(f.contents, f.progress, f.quizzes, f.ai, cm, testOptions(), logger.NewNop())
	return f
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func ptr(f float64) *float64 { return &f }
