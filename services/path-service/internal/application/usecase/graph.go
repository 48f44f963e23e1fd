package usecase

import (
	"context"
	"fmt"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// GraphBuilder turns a category's content and a learner's progress into prerequisite nodes and edges.
type GraphBuilder struct {
	contents    ContentStore
	progress    ProgressStore
	ai          Capability
	concurrency int
	log         *logger.Logger
}

func NewGraphBuilder(contents ContentStore, progress ProgressStore, ai Capability, concurrency int, log *logger.Logger) *GraphBuilder {
	if concurrency < 1 {
		concurrency = 1
	}
	return &GraphBuilder{
		contents:    contents,
		progress:    progress,
		ai:          ai,
		concurrency: concurrency,
		log:         log.With("component", "graph"),
	}
}

type edgeKey struct{ from, to uuid.UUID }

// Build returns the graph without recommendations, plus the learner's completed content scores.
// Store errors propagate; analysis failures fall back to the default analysis.
func (b *GraphBuilder) Build(ctx context.Context, categoryID, userID uuid.UUID) (domain.LearningPathGraph, map[uuid.UUID]float64, error) {
	items, err := b.contents.ListByCategory(ctx, categoryID)
	if err != nil {
		return domain.LearningPathGraph{}, nil, fmt.Errorf("list category content: %w", err)
	}
	records, err := b.progress.ListByUser(ctx, userID)
	if err != nil {
		return domain.LearningPathGraph{}, nil, fmt.Errorf("list progress: %w", err)
	}
	completed := domain.CompletedScores(records)
	analyses := b.analyze(ctx, items)

	inCategory := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.ID != uuid.Nil {
			inCategory[item.ID] = struct{}{}
		}
	}

	graph := domain.LearningPathGraph{
		Nodes:           make([]domain.PathNode, 0, len(items)),
		Edges:           []domain.PathEdge{},
		RecommendedNext: []domain.Recommendation{},
	}
	seen := make(map[edgeKey]struct{})
	for i, item := range items {
		if item.ID == uuid.Nil {
			continue
		}
		score, done := completed[item.ID]
		graph.Nodes = append(graph.Nodes, domain.PathNode{
			ID:         item.ID,
			Title:      item.Title,
			Difficulty: item.Difficulty,
			Completed:  done,
			Score:      score,
			Complexity: analyses[i].Complexity,
		})
		for _, pre := range item.Prerequisites {
			if _, ok := inCategory[pre]; !ok || pre == item.ID {
				continue
			}
			k := edgeKey{from: pre, to: item.ID}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			graph.Edges = append(graph.Edges, domain.PathEdge{From: pre, To: item.ID, Type: domain.EdgeTypePrerequisite})
		}
	}
	return graph, completed, nil
}

// analyze runs one prerequisite analysis per item with bounded parallelism. Results keep item order.
func (b *GraphBuilder) analyze(ctx context.Context, items []domain.Content) []domain.PrerequisiteAnalysis {
	out := make([]domain.PrerequisiteAnalysis, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i := range items {
		if items[i].ID == uuid.Nil {
			continue
		}
		g.Go(func() error {
			a, err := b.ai.AnalyzePrerequisites(gctx, items[i].Title)
			if err != nil {
				b.log.Warn("prerequisite analysis failed, using default", "content_id", items[i].ID, "error", err)
				metrics.AIFallbacks.WithLabelValues("analyze_prerequisites").Inc()
				a = domain.DefaultPrerequisiteAnalysis()
			}
			out[i] = a
			return nil
		})
	}
	_ = g.Wait()
	return out
}
