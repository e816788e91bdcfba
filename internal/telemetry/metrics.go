package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// AssessmentsTotal counts posture assessments by resulting threat level
	AssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vulnscope",
			Name:      "assessments_total",
			Help:      "Total number of posture assessments computed",
		},
		[]string{"threat_level"},
	)

	// AssessmentDuration tracks end-to-end assessment latency including store reads
	AssessmentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vulnscope",
			Name:      "assessment_duration_seconds",
			Help:      "Posture assessment duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// CacheWriteErrors counts failed posture cache upserts
	CacheWriteErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vulnscope",
			Name:      "posture_cache_write_errors_total",
			Help:      "Total number of failed posture cache writes",
		},
	)

	// CacheHits counts posture reads served from the cache
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vulnscope",
			Name:      "posture_cache_hits_total",
			Help:      "Total number of posture cache hits",
		},
	)

	// CacheMisses counts posture reads that required a fresh assessment
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vulnscope",
			Name:      "posture_cache_misses_total",
			Help:      "Total number of posture cache misses",
		},
	)

	// WSClients tracks currently connected dashboard websocket clients
	WSClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vulnscope",
			Name:      "ws_clients",
			Help:      "Number of connected dashboard websocket clients",
		},
	)

	// VulnerabilitiesImported counts records loaded through the import pipeline
	VulnerabilitiesImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vulnscope",
			Name:      "vulnerabilities_imported_total",
			Help:      "Total number of vulnerability records imported",
		},
		[]string{"source"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		// This prevents panics when metrics are already in the registry
		prometheus.DefaultRegisterer.Register(AssessmentsTotal)
		prometheus.DefaultRegisterer.Register(AssessmentDuration)
		prometheus.DefaultRegisterer.Register(CacheWriteErrors)
		prometheus.DefaultRegisterer.Register(CacheHits)
		prometheus.DefaultRegisterer.Register(CacheMisses)
		prometheus.DefaultRegisterer.Register(WSClients)
		prometheus.DefaultRegisterer.Register(VulnerabilitiesImported)
	})
}
