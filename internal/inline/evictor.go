// evictor.go houses the idle-eviction loop for Pool.  Every interval it
// closes idle caches that have not been checked out for longer than ttl,
// removing their scratch directories.  Busy servers keep their workers
// warm; a server that quietens down gives the disk back.
//
// Each eviction is logged and counted in Prometheus.
package inline

import (
	"context"
	"time"

	"github.com/yanizio/presenter/internal/metrics"
)

// Evict closes idle caches released more than ttl ago and returns how
// many it closed.  ttl <= 0 evicts nothing.
func (p *Pool) Evict(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-ttl)

	p.mu.Lock()
	var stale []*Cache
	kept := p.idle[:0]
	for _, ic := range p.idle {
		if ic.since.Before(cutoff) {
			stale = append(stale, ic.c)
			delete(p.all, ic.c)
			continue
		}
		kept = append(kept, ic)
	}
	p.idle = kept
	log := p.log
	p.mu.Unlock()

	for _, c := range stale {
		if err := c.Close(); err != nil {
			log.Warnw("evict inline worker", "worker", c.ID(), "err", err)
			continue
		}
		log.Infow("inline worker evicted", "worker", c.ID(), "idle_ttl", ttl)
		metrics.WorkerEvictTotal.Inc()
	}
	return len(stale)
}

// StartEvictor runs Evict every interval until ctx is done.
func (p *Pool) StartEvictor(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				p.Evict(ttl)
			}
		}
	}()
}
