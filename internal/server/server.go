// internal/server/server.go
//
// HTTP server helper with robust timeouts and graceful shutdown.
//
// Production hardening recommends:
//
//   • ReadTimeout   – abort slow-loris headers (10 s)
//   • WriteTimeout  – cap total response time (15 s)
//   • IdleTimeout   – close keep-alives on idle clients (60 s)
//
// Run drives the server until ctx is cancelled, then drains in-flight
// requests before invoking the supplied cleanup hooks.  cmd/web passes
// pool.Close as a hook so worker scratch directories are removed only once
// no request can still be rendering into them.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// New constructs an *http.Server with sensible defaults.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Run serves srv until ctx is done or ListenAndServe fails.  On the way
// out every hook runs in order; the first non-nil error is returned.
func Run(ctx context.Context, srv *http.Server, hooks ...func() error) error {
	errc := make(chan error, 1)
	go func() {
		zap.S().Infow("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		zap.S().Infow("http server shutting down", "addr", srv.Addr)
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		runErr = srv.Shutdown(sctx)
		cancel()
	case err, ok := <-errc:
		if ok {
			runErr = err
		}
	}

	for _, hook := range hooks {
		if err := hook(); err != nil {
			zap.S().Warnw("shutdown hook failed", "err", err)
			if runErr == nil {
				runErr = err
			}
		}
	}
	return runErr
}
