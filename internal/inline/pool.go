// internal/inline/pool.go
//
// Worker pool.
//
// Context
// -------
// Go has no goroutine-local storage, so "one cache per worker" is made
// explicit: a goroutine Acquires a Cache, owns it until Release, and
// passes it along through context.Context when it needs to.  Released
// caches keep their compiled templates and go back on an idle list for
// the next worker.  Past the idle limit a released cache is closed, which
// removes its scratch directory.
//
// Close tears every cache down at process shutdown.  Caches still checked
// out are torn down as well; their holders get ErrPoolClosed from the
// next Acquire but may keep rendering, recreating a scratch directory
// that nothing will clean.
package inline

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pool hands out worker caches.
type Pool struct {
	compiler Compiler
	opts     []Option
	maxIdle  int
	log      *zap.SugaredLogger

	mu     sync.Mutex
	idle   []idleCache
	all    map[*Cache]struct{}
	out    map[*Cache]struct{}
	closed bool
}

type idleCache struct {
	c     *Cache
	since time.Time
}

// NewPool returns an empty pool.  opts apply to the pool and to every
// cache it creates.
func NewPool(compiler Compiler, opts ...Option) *Pool {
	o := newOptions(opts)
	return &Pool{
		compiler: compiler,
		opts:     opts,
		maxIdle:  o.maxIdle,
		log:      o.log,
		all:      map[*Cache]struct{}{},
		out:      map[*Cache]struct{}{},
	}
}

// Acquire returns a cache owned by the caller until Release.
func (p *Pool) Acquire() (*Cache, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}
	if n := len(p.idle); n > 0 {
		c := p.idle[n-1].c
		p.idle = p.idle[:n-1]
		p.out[c] = struct{}{}
		return c, nil
	}
	c := NewCache(p.compiler, p.opts...)
	p.all[c] = struct{}{}
	p.out[c] = struct{}{}
	return c, nil
}

// Release returns c to the pool.  When the idle list is full, or the pool
// is closed, c is torn down instead.  Releasing a cache that is not
// checked out from this pool (a second Release, or a foreign cache)
// returns ErrNotCheckedOut and changes nothing.
func (p *Pool) Release(c *Cache) error {
	if c == nil {
		return nil
	}
	p.mu.Lock()
	if _, ok := p.out[c]; !ok {
		p.mu.Unlock()
		return ErrNotCheckedOut
	}
	delete(p.out, c)
	if !p.closed && len(p.idle) < p.maxIdle {
		p.idle = append(p.idle, idleCache{c: c, since: time.Now()})
		p.mu.Unlock()
		return nil
	}
	delete(p.all, c)
	p.mu.Unlock()
	return c.Close()
}

// Reset clears the compiled templates of every cache the pool knows.
func (p *Pool) Reset() {
	for _, c := range p.snapshot() {
		c.Reset()
	}
}

// Len reports how many caches the pool tracks, idle or checked out.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.all)
}

// Close tears down every cache and refuses further Acquire calls.
func (p *Pool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.idle = nil
	p.mu.Unlock()

	var g errgroup.Group
	for _, c := range p.snapshot() {
		g.Go(c.Close)
	}
	return g.Wait()
}

func (p *Pool) snapshot() []*Cache {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Cache, 0, len(p.all))
	for c := range p.all {
		out = append(out, c)
	}
	return out
}

//
// context carriage
//

type ctxKey struct{}

// WithCache returns a copy of ctx carrying c.
func WithCache(ctx context.Context, c *Cache) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// CacheFrom returns the cache stored by WithCache.
func CacheFrom(ctx context.Context) (*Cache, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Cache)
	return c, ok && c != nil
}
