package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors for the recommendation flow, registered on the default
// registry and served at /metrics.
var (
	RecommendationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_recommendations_total",
		Help: "Number of recommendation results computed.",
	})

	ProfilerFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_profiler_fallbacks_total",
		Help: "Number of keyword profiles served from the fixed fallback list.",
	})

	ProfileCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_profile_cache_hits_total",
		Help: "Number of keyword profiles served from the cache.",
	})

	ProfileCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_profile_cache_misses_total",
		Help: "Number of keyword profile cache misses.",
	})

	GenerateKeywordsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "club_generate_keywords_duration_seconds",
		Help:    "Latency of text-generation keyword calls.",
		Buckets: prometheus.DefBuckets,
	})
)
