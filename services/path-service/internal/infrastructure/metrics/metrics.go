package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache results, labelled by cache category.
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheBypass = "bypass"
	CacheError  = "error"
)

var (
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "path_cache_requests_total",
			Help: "Cache-aside lookups by category and result (hit, miss, bypass, error)",
		},
		[]string{"category", "result"},
	)

	AIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "path_ai_requests_total",
			Help: "AI capability calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	AIFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "path_ai_fallbacks_total",
			Help: "AI capability failures absorbed by a documented fallback value",
		},
		[]string{"operation"},
	)

	RecommendationSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "path_recommendation_source_failures_total",
			Help: "Recommendation sources that failed and contributed nothing",
		},
		[]string{"source"},
	)

	PathBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "path_graph_build_duration_seconds",
			Help:    "Time to build a learning path graph on cache miss",
			Buckets: prometheus.DefBuckets,
		},
	)
)
