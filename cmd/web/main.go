// cmd/web/main.go
//
// Presenter demo server – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load layered config (defaults → conf/.env → conf/global.yaml → env).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Build the engine registry and the inline worker pool.
//
//  4. Open the optional GeoLite2 database.
//
//  5. Mount the router:
//
//     • /metrics                 – Prometheus
//     • Security headers         – every response
//     • requestinfo.Enrich       – UA, IP, Geo on the context
//     • middleware.Worker        – one inline cache per request
//     • components               – home (/), debug (/debug, /api/debug)
//
//  6. SIGHUP reloads config and clears every compiled template; SIGINT and
//     SIGTERM drain the server, then close the pool so no scratch
//     directory outlives the process.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/presenter/internal/component"
	"github.com/yanizio/presenter/internal/config"
	"github.com/yanizio/presenter/internal/engine"
	"github.com/yanizio/presenter/internal/inline"
	"github.com/yanizio/presenter/internal/logger"
	"github.com/yanizio/presenter/internal/middleware"
	"github.com/yanizio/presenter/internal/requestinfo"
	"github.com/yanizio/presenter/internal/server"

	_ "github.com/yanizio/presenter/components/debug" // request details
	_ "github.com/yanizio/presenter/components/home"  // landing page
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, cfg.Log.Level, cfg.Log.Tee || runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Engines and worker pool ─────────────────────────────────────
	//
	engines := engine.Default()
	pool := inline.NewPool(engines,
		inline.WithScratchRoot(cfg.Inline.ScratchRoot),
		inline.WithMaxEntries(cfg.Inline.MaxEntries),
		inline.WithMaxIdle(cfg.Inline.MaxIdleWorkers),
		inline.WithLogger(logOut),
	)
	logOut.Infow("inline pool ready", "formats", engines.Formats())

	//
	// ── 2.  Optional GeoLite2 reader ────────────────────────────────────
	//
	var geo requestinfo.GeoReader
	if reader, err := requestinfo.OpenGeo(cfg.GeoIP.Database); err != nil {
		logOut.Warnw("geoip disabled", "db", cfg.GeoIP.Database, "err", err)
	} else if reader != nil {
		defer reader.Close()
		geo = reader
	}

	//
	// ── 3.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(requestinfo.Enrich(geo))
		r.Use(middleware.Worker(pool))
		if err := component.Mount(r); err != nil {
			logOut.Fatalw("mount components", "err", err)
		}
	})

	//
	// ── 4.  Signals ─────────────────────────────────────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go reloadOnHUP(ctx, pool)
	pool.StartEvictor(ctx, evictInterval(cfg.Inline.IdleTTL), cfg.Inline.IdleTTL)

	srv := server.New(cfg.HTTP.ListenAddr, r)
	if err := server.Run(ctx, srv, pool.Close); err != nil {
		logOut.Errorw("server stopped", "err", err)
		_ = logOut.Sync()
		os.Exit(1)
	}
	logOut.Infow("server stopped cleanly")
}

// evictInterval scans at most once a minute, sooner for short TTLs.
func evictInterval(ttl time.Duration) time.Duration {
	return min(ttl, time.Minute)
}

// reloadOnHUP re-reads config and drops every compiled template on SIGHUP.
func reloadOnHUP(ctx context.Context, pool *inline.Pool) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := config.Reload(); err != nil {
				zap.S().Warnw("config reload failed", "err", err)
			}
			pool.Reset()
			zap.S().Infow("inline templates cleared", "workers", pool.Len())
		}
	}
}
