package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by command name, incremented from the cache hook.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haggle_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// AdvertPublishes counts publication attempts by outcome
	// (published, validation_failed, upload_failed, create_failed, backref_failed).
	AdvertPublishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haggle_advert_publishes_total",
		Help: "Total number of advert publication attempts by outcome",
	}, []string{"outcome"})

	// AuthFailures counts rejected authentication attempts by kind (token, password).
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haggle_auth_failures_total",
		Help: "Total number of failed authentication attempts by kind",
	}, []string{"kind"})

	// CacheHits and CacheMisses track the advert read-through cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haggle_cache_hits_total",
		Help: "Total number of advert cache hits",
	})
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haggle_cache_misses_total",
		Help: "Total number of advert cache misses",
	})
)

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the HTTP metrics collector for the given service name.
// The collector registers with the default Prometheus registry, so repeated
// calls (test servers) return the same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(serviceName)
	})
	return promInst
}

// MetricsMiddleware returns the Fiber handler that records per-request HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
