// internal/inline/cache.go
//
// Per-worker compiled template cache.
//
// Context
// -------
// A Cache maps Key (file, line, format) to a compiled engine.Handle plus
// the source file's mtime at compile time.  Fetch stats the source on
// every call.  A matching mtime is a hit; anything else re-extracts the
// comment block, rewrites the scratch file, recompiles, and replaces the
// entry.  Compilation therefore happens at most once per edit, per worker.
//
// Lifecycle
// ---------
//   - The scratch directory is created on the first miss.
//   - Reset drops every entry and keeps the directory.
//   - Close drops every entry and removes the directory.  The cache stays
//     usable; the next miss creates a fresh directory.
//
// Notes
// -----
//   - The mutex covers Fetch, Reset, and Close.  It is not held while a
//     handle renders, so a template may render other inline templates on
//     the same worker.
//   - There is no TOCTOU protection between the stat and the extract.  An
//     edit in that window leaves an entry that self-corrects once the
//     mtime moves again.
package inline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanizio/presenter/internal/cache"
	"github.com/yanizio/presenter/internal/engine"
	"github.com/yanizio/presenter/internal/metrics"
)

// Compiler builds a handle from a template file.  *engine.Registry
// satisfies it.
type Compiler interface {
	Compile(path, format string) (engine.Handle, error)
}

type entry struct {
	handle engine.Handle
	mtime  time.Time
}

// Cache is one worker's compiled template cache.  The zero value is
// invalid; use NewCache or Pool.Acquire.
type Cache struct {
	mu       sync.Mutex
	id       string
	compiler Compiler
	opts     options
	dir      string
	entries  *cache.LRU[Key, entry]
}

// NewCache returns an empty cache that compiles through compiler.
func NewCache(compiler Compiler, opts ...Option) *Cache {
	o := newOptions(opts)
	return &Cache{
		id:       uuid.NewString(),
		compiler: compiler,
		opts:     o,
		entries:  cache.New[Key, entry](o.maxEntries),
	}
}

// ID identifies the worker in logs.
func (c *Cache) ID() string { return c.id }

// Dir returns the current scratch directory, or "" before the first miss
// and after Close.
func (c *Cache) Dir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

// Len reports how many compiled templates are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Fetch returns the compiled handle for key, compiling it when the key is
// missing or its source file changed since the last compile.
func (c *Cache) Fetch(key Key) (engine.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, cached := c.entries.Get(key)

	info, err := os.Stat(key.File)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	mtime := info.ModTime()

	if cached && ent.mtime.Equal(mtime) {
		metrics.CacheHitsTotal.Inc()
		return ent.handle, nil
	}
	if cached {
		metrics.CacheStaleTotal.Inc()
		c.opts.log.Debugw("inline template stale",
			"key", key.String(), "worker", c.id,
			"cached_mtime", ent.mtime, "mtime", mtime)
	} else {
		metrics.CacheMissesTotal.Inc()
	}

	h, err := c.compile(key)
	if err != nil {
		return nil, err
	}
	if evicted := c.entries.Add(key, entry{handle: h, mtime: mtime}); evicted {
		c.opts.log.Debugw("inline cache full, evicted oldest entry",
			"worker", c.id, "capacity", c.opts.maxEntries)
	}
	return h, nil
}

// compile extracts, writes, and compiles the template for key.
func (c *Cache) compile(key Key) (engine.Handle, error) {
	src, err := c.opts.extract(key.File, key.Line)
	if err != nil {
		return nil, err
	}
	path, err := c.writeScratch(key, src)
	if err != nil {
		return nil, err
	}

	h, err := c.compiler.Compile(path, key.Format)
	if err != nil {
		metrics.CompileErrorsTotal.WithLabelValues(key.Format).Inc()
		c.opts.log.Debugw("inline template compile failed",
			"key", key.String(), "worker", c.id, "err", err)
		return nil, err
	}
	metrics.CompileTotal.WithLabelValues(key.Format).Inc()
	c.opts.log.Debugw("inline template compiled",
		"key", key.String(), "worker", c.id, "scratch", path)
	return h, nil
}

// writeScratch stores src under the key's deterministic scratch name.  A
// scratch directory removed behind our back is recreated once.
func (c *Cache) writeScratch(key Key, src string) (string, error) {
	for attempt := 0; ; attempt++ {
		if err := c.ensureDir(); err != nil {
			return "", err
		}
		path := filepath.Join(c.dir, key.scratchName())
		err := os.WriteFile(path, []byte(src), 0o600)
		if err == nil {
			return path, nil
		}
		if attempt == 0 && errors.Is(err, fs.ErrNotExist) {
			c.dropDir()
			continue
		}
		return "", fmt.Errorf("inline: write scratch %s: %w", path, err)
	}
}

func (c *Cache) ensureDir() error {
	if c.dir != "" {
		return nil
	}
	dir, err := os.MkdirTemp(c.opts.scratchRoot, "presenter-")
	if err != nil {
		return fmt.Errorf("inline: create scratch dir: %w", err)
	}
	c.dir = dir
	metrics.ActiveWorkers.Inc()
	c.opts.log.Infow("inline worker scratch dir created", "worker", c.id, "dir", dir)
	return nil
}

func (c *Cache) dropDir() {
	c.dir = ""
	metrics.ActiveWorkers.Dec()
}

// Reset discards every cached entry.  The next Fetch of any key
// re-extracts and recompiles, even if no file changed.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries.Purge()
	c.mu.Unlock()
}

// Close discards every entry and removes the scratch directory.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Purge()
	if c.dir == "" {
		return nil
	}
	dir := c.dir
	c.dropDir()
	if err := os.RemoveAll(dir); err != nil {
		c.opts.log.Warnw("inline scratch cleanup failed", "worker", c.id, "dir", dir, "err", err)
		return fmt.Errorf("inline: remove scratch dir: %w", err)
	}
	c.opts.log.Infow("inline worker scratch dir removed", "worker", c.id, "dir", dir)
	return nil
}
