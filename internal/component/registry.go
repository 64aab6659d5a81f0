// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  cmd/web mounts every
// component's Routes() at "/" after the worker middleware, so handlers can
// pull their inline cache from the request context.

package component

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.
//
// Routes() should mount BOTH page and API endpoints, e.g:
//
//	r := chi.NewRouter()
//	r.Get("/debug", page)
//	r.Get("/api/debug", api)
//	return r
type Component interface {
	Name() string
	Routes() chi.Router
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.  A second
// registration under the same name replaces the first.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name, so mount order
// is stable across runs.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount attaches every registered component to r.  chi allows only one
// Mount per pattern, so each route a component declares is registered on
// r individually and delegated to the component's own router.
func Mount(r chi.Router) error {
	for _, c := range All() {
		sub := c.Routes()
		err := chi.Walk(sub, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			r.Method(method, route, sub)
			return nil
		})
		if err != nil {
			return fmt.Errorf("mount component %s: %w", c.Name(), err)
		}
	}
	return nil
}
