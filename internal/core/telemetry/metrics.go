package telemetry

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type AppMetrics struct {
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	activeConnections  prometheus.Gauge
	memoryUsage        prometheus.Gauge
	goroutines         prometheus.Gauge
	entityOperations   *prometheus.CounterVec
	databaseOperations *prometheus.CounterVec
	businessEvents     *prometheus.CounterVec
	rateLimitHits      *prometheus.CounterVec
	rateLimitAllowed   *prometheus.CounterVec
}

func NewAppMetrics(registry prometheus.Registerer) *AppMetrics {
	metrics := &AppMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		activeConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Number of active HTTP connections",
			},
		),
		memoryUsage: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
		),
		goroutines: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "goroutines_total",
				Help: "Number of goroutines",
			},
		),
		entityOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_operations_total",
				Help: "Total number of service operations per entity",
			},
			[]string{"entity", "operation"},
		),
		databaseOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_operations_total",
				Help: "Total number of database operations",
			},
			[]string{"operation", "entity", "outcome"},
		),
		businessEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_business_events_total",
				Help: "Total number of business events",
			},
			[]string{"event"},
		),
		rateLimitHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_hits_total",
				Help: "Total number of rate limit hits",
			},
			[]string{"path", "key_type"},
		),
		rateLimitAllowed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_allowed_total",
				Help: "Total number of requests allowed by rate limiter",
			},
			[]string{"path", "key_type"},
		),
	}

	registry.MustRegister(
		metrics.requestDuration,
		metrics.requestTotal,
		metrics.activeConnections,
		metrics.memoryUsage,
		metrics.goroutines,
		metrics.entityOperations,
		metrics.databaseOperations,
		metrics.businessEvents,
		metrics.rateLimitHits,
		metrics.rateLimitAllowed,
	)

	return metrics
}

func (m *AppMetrics) RecordRequest(ctx context.Context, method, path, status string, duration time.Duration) {
	m.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, status).Inc()
}

func (m *AppMetrics) IncrementActiveConnections(ctx context.Context) {
	m.activeConnections.Inc()
}

func (m *AppMetrics) DecrementActiveConnections(ctx context.Context) {
	m.activeConnections.Dec()
}

func (m *AppMetrics) RecordEntityOperation(ctx context.Context, entity, operation string) {
	m.entityOperations.WithLabelValues(entity, operation).Inc()
}

func (m *AppMetrics) RecordDatabaseOperation(ctx context.Context, operation, entity string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	m.databaseOperations.WithLabelValues(operation, entity, outcome).Inc()
}

func (m *AppMetrics) RecordBusinessEvent(ctx context.Context, event string) {
	m.businessEvents.WithLabelValues(event).Inc()
}

func (m *AppMetrics) RecordRateLimitHit(ctx context.Context, path, keyType string) {
	m.rateLimitHits.WithLabelValues(path, keyType).Inc()
}

func (m *AppMetrics) RecordRateLimitAllowed(ctx context.Context, path, keyType string) {
	m.rateLimitAllowed.WithLabelValues(path, keyType).Inc()
}

// StartSystemMetrics samples memory and goroutine counts until ctx is done.
func (m *AppMetrics) StartSystemMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				var memStats runtime.MemStats
				runtime.ReadMemStats(&memStats)
				m.memoryUsage.Set(float64(memStats.Alloc))

				m.goroutines.Set(float64(runtime.NumGoroutine()))
			case <-ctx.Done():
				return
			}
		}
	}()
}
