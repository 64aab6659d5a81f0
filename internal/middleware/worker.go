// internal/middleware/worker.go
//
// HTTP middleware that checks an inline worker cache out of the pool for
// the lifetime of one request.
//
/*
Context
--------
Presenters compile their inline templates into a worker cache.  Caches
are not shared between goroutines, and net/http serves each request on
its own goroutine, so the request is the natural worker boundary.  For
every request this handler:

  1. Acquires a *inline.Cache from the pool.
  2. Stores it in `request.Context` (see inline.CacheFrom).
  3. Releases it once the downstream handler returns, which keeps its
     compiled templates warm for the next request.

A closed pool (server shutting down) answers 503.
*/
package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/presenter/internal/inline"
)

// Worker wraps next so every request carries its own worker cache.
func Worker(pool *inline.Pool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := pool.Acquire()
			if err != nil {
				zap.S().Warnw("inline worker unavailable", "path", r.URL.Path, "err", err)
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			defer func() {
				if err := pool.Release(c); err != nil {
					zap.S().Warnw("inline worker release failed", "worker", c.ID(), "err", err)
				}
			}()

			next.ServeHTTP(w, r.WithContext(inline.WithCache(r.Context(), c)))
		})
	}
}
