package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// DjangoEngine compiles Django-syntax templates with pongo2.  The presenter
// is reachable as {{ self.Field }} and locals by name.
type DjangoEngine struct {
	mu  sync.Mutex // TemplateSet.FromBytes writes set state
	set *pongo2.TemplateSet
}

var registerFiltersOnce sync.Once

// NewDjango returns a pongo2-backed engine with its own template set.
// Includes and extends resolve relative to the scratch file's directory.
func NewDjango() *DjangoEngine {
	registerFiltersOnce.Do(registerDefaultFilters)
	return &DjangoEngine{
		set: pongo2.NewSet("inline", pongo2.MustNewLocalFileSystemLoader("")),
	}
}

// Compile parses the template at path.
func (e *DjangoEngine) Compile(path string) (Handle, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("django engine: read %s: %w", path, err)
	}
	e.mu.Lock()
	tpl, err := e.set.FromBytes(src)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("django engine: parse %s: %w", filepath.Base(path), err)
	}
	return &djangoHandle{tpl: tpl}, nil
}

type djangoHandle struct {
	tpl *pongo2.Template
}

func (h *djangoHandle) Render(self any, locals map[string]any) (string, error) {
	return h.tpl.Execute(pongo2.Context(Scope(self, locals)))
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
