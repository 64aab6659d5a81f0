// Package metrics holds Prometheus instruments used by the inline template
// core.  All collectors are registered with the global registry, so
// mounting promhttp.Handler() in main.go is enough to expose them on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inline_cache_hits_total",
			Help: "Fetches served from a worker cache without recompiling.",
		})

	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inline_cache_misses_total",
			Help: "Fetches for keys absent from the worker cache.",
		})

	CacheStaleTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inline_cache_stale_total",
			Help: "Fetches whose cached entry was invalidated by a source mtime change.",
		})

	CompileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inline_compile_total",
			Help: "Inline templates compiled, by format.",
		}, []string{"format"})

	CompileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inline_compile_errors_total",
			Help: "Inline template compilations that failed, by format.",
		}, []string{"format"})

	RenderErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inline_render_errors_total",
			Help: "Render calls that returned an error.",
		})

	WorkerEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inline_worker_evict_total",
			Help: "Idle worker caches closed by the evictor.",
		})

	ActiveWorkers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inline_workers_active",
			Help: "Worker caches currently holding a scratch directory.",
		})
)

func init() {
	prometheus.MustRegister(
		CacheHitsTotal,
		CacheMissesTotal,
		CacheStaleTotal,
		CompileTotal,
		CompileErrorsTotal,
		RenderErrorsTotal,
		WorkerEvictTotal,
		ActiveWorkers,
	)
}
