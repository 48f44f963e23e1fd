package cache

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/internal/infrastructure/metrics"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/blake2b"
)

// Category selects the TTL bucket of a cache entry.
type Category string

const (
	CategoryRecommendations Category = "recommendations"
	CategoryContent         Category = "content"
	CategoryQuiz            Category = "quiz"
	CategoryUserProgress    Category = "user_progress"
	CategoryLearningPath    Category = "learning_path"
)

// TTLs holds the default lifetime per category.
type TTLs map[Category]time.Duration

func DefaultTTLs() TTLs {
	return TTLs{
		CategoryRecommendations: time.Hour,
		CategoryContent:         24 * time.Hour,
		CategoryQuiz:            7 * 24 * time.Hour,
		CategoryUserProgress:    30 * time.Minute,
		CategoryLearningPath:    time.Hour,
	}
}

const fallbackTTL = time.Hour

// jsonNull is never stored; a nil result is recomputed next time.
var jsonNull = []byte("null")

// Manager fronts a Backend with cache-aside semantics. A nil Manager, a nil backend or a
// backend that failed its last health check all degrade to calling compute directly.
type Manager struct {
	backend   Backend
	ttls      TTLs
	log       *logger.Logger
	available atomic.Bool
}

func NewManager(backend Backend, ttls TTLs, log *logger.Logger) *Manager {
	merged := DefaultTTLs()
	for k, v := range ttls {
		if v > 0 {
			merged[k] = v
		}
	}
	return &Manager{backend: backend, ttls: merged, log: log.With("component", "cache")}
}

// Init probes the backend once. A failed probe leaves the manager in bypass mode and is
// reported so the caller can log it; it is never fatal.
func (m *Manager) Init(ctx context.Context) error {
	return m.probe(ctx)
}

func (m *Manager) probe(ctx context.Context) error {
	if m.backend == nil {
		m.available.Store(false)
		return fmt.Errorf("%w: no cache backend configured", domain.ErrCollaboratorUnavailable)
	}
	if err := m.backend.Ping(ctx); err != nil {
		if m.available.Swap(false) {
			m.log.Warn("cache backend became unavailable", "error", err)
		}
		return fmt.Errorf("%w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	if !m.available.Swap(true) {
		m.log.Info("cache connection established")
	}
	return nil
}

// Watch re-probes the backend every period until ctx is done.
func (m *Manager) Watch(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = m.probe(ctx)
		}
	}
}

func (m *Manager) Available() bool {
	return m != nil && m.backend != nil && m.available.Load()
}

func (m *Manager) Close() error {
	if m == nil || m.backend == nil {
		return nil
	}
	m.available.Store(false)
	return m.backend.Close()
}

// TTL returns the default lifetime for a category.
func (m *Manager) TTL(category Category) time.Duration {
	if ttl, ok := m.ttls[category]; ok {
		return ttl
	}
	return fallbackTTL
}

// GetOrSet returns the cached value under key or computes, stores and returns it.
// ttl <= 0 selects the category default. Cache failures are logged and absorbed; only
// compute errors reach the caller. Failed computes and nil results are never stored.
func GetOrSet[T any](ctx context.Context, m *Manager, key string, category Category, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	if !m.Available() {
		metrics.CacheRequests.WithLabelValues(string(category), metrics.CacheBypass).Inc()
		return compute(ctx)
	}

	raw, err := m.backend.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		uErr := json.Unmarshal(raw, &cached)
		if uErr == nil {
			m.log.Debug("cache hit", "key", key)
			metrics.CacheRequests.WithLabelValues(string(category), metrics.CacheHit).Inc()
			return cached, nil
		}
		m.log.Warn("cache entry undecodable, recomputing", "key", key, "error", uErr)
	case errors.Is(err, ErrMiss):
	default:
		m.log.Error("cache read failed", "key", key, "error", err)
		metrics.CacheRequests.WithLabelValues(string(category), metrics.CacheError).Inc()
		return compute(ctx)
	}
	metrics.CacheRequests.WithLabelValues(string(category), metrics.CacheMiss).Inc()

	result, err := compute(ctx)
	if err != nil {
		return result, err
	}

	if ttl <= 0 {
		ttl = m.TTL(category)
	}
	data, err := json.Marshal(result)
	if err != nil {
		m.log.Error("cache encode failed", "key", key, "error", err)
		return result, nil
	}
	if bytes.Equal(data, jsonNull) {
		return result, nil
	}
	if err := m.backend.Set(ctx, key, data, ttl); err != nil {
		m.log.Error("cache write failed", "key", key, "error", err)
		metrics.CacheRequests.WithLabelValues(string(category), metrics.CacheError).Inc()
	}
	return result, nil
}

// DigestKey namespaces free text (topics, queries) into a bounded key.
func DigestKey(prefix, text string) string {
	sum := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(text))))
	return prefix + ":" + hex.EncodeToString(sum[:16])
}
