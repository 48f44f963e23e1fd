package usecase

import (
	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/internal/infrastructure/cache"
)

type Options struct {
	Retry               RetryPolicy
	AnalyzeConcurrency  int
	SimilarityThreshold float64
	DuplicateThreshold  float64
}

func DefaultOptions() Options {
	return Options{
		Retry:               DefaultRetryPolicy(),
		AnalyzeConcurrency:  4,
		SimilarityThreshold: 0.7,
		DuplicateThreshold:  0.85,
	}
}

// PathService exposes every learning path operation the transport layer serves.
type PathService struct {
	contents ContentStore
	progress ProgressStore
	quizzes  QuizStore
	ai       Capability
	cache    *cache.Manager
	log      *logger.Logger

	similarity *SimilarityEngine
	graph      *GraphBuilder
	nlp        *NLPSource
	aggregator *Aggregator

	duplicateThreshold float64
}

func NewPathService(contents ContentStore, progress ProgressStore, quizzes QuizStore, ai Capability, cm *cache.Manager, opts Options, log *logger.Logger) *PathService {
	sim := NewSimilarityEngine(ai, opts.Retry, log)
	nlp := NewNLPSource(contents, progress, sim, cm, opts.SimilarityThreshold, log)
	return &PathService{
		contents:           contents,
		progress:           progress,
		quizzes:            quizzes,
		ai:                 ai,
		cache:              cm,
		log:                log.With("component", "path_service"),
		similarity:         sim,
		graph:              NewGraphBuilder(contents, progress, ai, opts.AnalyzeConcurrency, log),
		nlp:                nlp,
		aggregator:         NewAggregator(contents, progress, nlp, cm, log),
		duplicateThreshold: opts.DuplicateThreshold,
	}
}
