// internal/engine/registry.go
//
// Engine registry.
//
// Context
// -------
// An **Engine** turns a template file on disk into a compiled Handle.  The
// registry maps a short format token ("tmpl", "erb", "html", "django",
// "md") to the engine that understands it.  The inline cache writes each
// extracted comment block to a scratch file and asks the registry to
// compile that file by format.
//
// Unknown formats fail fast with ErrUnsupportedFormat.  There is no
// fallback engine.
//
// Notes
// -----
//   - Registries are safe for concurrent use.  Engines must be too, since
//     every worker cache shares the same registry.
//   - The package-level Register and Lookup helpers operate on the
//     default registry returned by Default().
package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnsupportedFormat is returned when no engine is registered for a
// format.
var ErrUnsupportedFormat = errors.New("engine: unsupported format")

// Handle is a compiled template.  Render evaluates it with self as the
// evaluation context and locals as bound variables.
type Handle interface {
	Render(self any, locals map[string]any) (string, error)
}

// Engine compiles the template stored at path.
type Engine interface {
	Compile(path string) (Handle, error)
}

// EngineFunc adapts a plain function to the Engine interface.
type EngineFunc func(path string) (Handle, error)

// Compile calls f(path).
func (f EngineFunc) Compile(path string) (Handle, error) { return f(path) }

// Registry maps format tokens to engines.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: map[string]Engine{}}
}

// Register binds format to e.  A later registration for the same format
// replaces the earlier one.
func (r *Registry) Register(format string, e Engine) {
	r.mu.Lock()
	r.engines[format] = e
	r.mu.Unlock()
}

// Lookup returns the engine for format or nil.
func (r *Registry) Lookup(format string) Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.engines[format]
}

// Formats lists registered formats in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.engines))
	for f := range r.engines {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Compile resolves the engine for format and compiles path with it.
// Engine errors are returned unchanged.
func (r *Registry) Compile(path, format string) (Handle, error) {
	e := r.Lookup(format)
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return e.Compile(path)
}

//
// default registry
//

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, preloaded with the built-in
// engines on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		RegisterBuiltins(defaultReg)
	})
	return defaultReg
}

// RegisterBuiltins installs every built-in engine into r.
func RegisterBuiltins(r *Registry) {
	r.Register(FormatText, NewText())
	r.Register(FormatERB, NewERB())
	r.Register(FormatHTML, NewHTML())
	r.Register(FormatDjango, NewDjango())
	r.Register(FormatMarkdown, NewMarkdown())
}

// Register binds format to e on the default registry.
func Register(format string, e Engine) { Default().Register(format, e) }

// Lookup returns the engine for format from the default registry.
func Lookup(format string) Engine { return Default().Lookup(format) }
