package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis operation failures by operation name. Incremented
// from the cache hook and the rate limiter so dashboards can see degraded
// cache behavior even while the API keeps serving (fail-open).
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "atelier_redis_errors_total",
		Help: "Total number of Redis command errors by operation.",
	},
	[]string{"op"},
)

// DBQueryDuration tracks database query latency, observed from the GORM
// logger so every query is covered without per-call instrumentation.
var DBQueryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "atelier_db_query_duration_seconds",
		Help:    "Database query latency in seconds.",
		Buckets: prometheus.DefBuckets,
	},
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus request collector. Collectors register
// against the default registry, so repeated calls (tests build many servers)
// return the same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware returns the request-instrumenting handler for the
// registered Prometheus collector.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
