package inline

import (
	"strings"

	"go.uber.org/zap"
)

// Option configures a Cache or a Pool.
type Option func(*options)

type options struct {
	scratchRoot string
	maxEntries  int
	maxIdle     int
	extract     func(file string, line int) (string, error)
	log         *zap.SugaredLogger
}

func newOptions(opts []Option) options {
	o := options{
		maxEntries: 0,
		maxIdle:    8,
		extract:    Extract,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.S()
	}
	return o
}

// WithScratchRoot sets the parent directory of every scratch directory.
// Empty means os.TempDir().
func WithScratchRoot(dir string) Option {
	return func(o *options) {
		o.scratchRoot = strings.TrimSpace(dir)
	}
}

// WithMaxEntries bounds how many compiled templates one worker keeps.  0,
// the default, keeps every call site compiled until its file changes.  A
// bound makes a worker recompile evicted sites without any edit, so use it
// only when memory matters more than compile counts.  Negative values are
// ignored.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxEntries = n
		}
	}
}

// WithMaxIdle bounds how many released caches a Pool keeps for reuse.
// Caches released beyond that are torn down.
func WithMaxIdle(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxIdle = n
		}
	}
}

// WithExtractor replaces Extract.  Tests use it to count extractions.
func WithExtractor(fn func(file string, line int) (string, error)) Option {
	return func(o *options) {
		if fn != nil {
			o.extract = fn
		}
	}
}

// WithLogger sets the logger; the default is zap.S().
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		o.log = log
	}
}
