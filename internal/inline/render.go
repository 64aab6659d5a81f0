package inline

import (
	"fmt"

	"github.com/yanizio/presenter/internal/metrics"
)

// Render evaluates the template found below site with self as the
// evaluation context.  locals may be nil, Locals, map[string]any, or a
// Binding.  The output is returned verbatim; only the compiled handle is
// cached, never the output.
func Render(c *Cache, self any, locals any, site CallSite, format string) (string, error) {
	out, err := render(c, self, locals, site, format)
	if err != nil {
		metrics.RenderErrorsTotal.Inc()
	}
	return out, err
}

func render(c *Cache, self any, locals any, site CallSite, format string) (string, error) {
	if c == nil {
		return "", ErrNoWorker
	}
	if !site.Valid() {
		return "", fmt.Errorf("%w: %q", ErrLocationUnresolved, site.String())
	}
	env, err := resolveLocals(locals)
	if err != nil {
		return "", err
	}
	h, err := c.Fetch(Key{File: site.File, Line: site.Line, Format: format})
	if err != nil {
		return "", err
	}
	return h.Render(self, env)
}
