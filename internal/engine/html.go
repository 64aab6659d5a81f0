package engine

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// HTMLEngine compiles html/template sources.  Output is contextually
// escaped; presenter methods that return already-safe markup should return
// template.HTML.
type HTMLEngine struct{}

// NewHTML returns an html/template engine.
func NewHTML() *HTMLEngine { return &HTMLEngine{} }

// Compile parses the template at path.
func (e *HTMLEngine) Compile(path string) (Handle, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("html engine: read %s: %w", path, err)
	}
	tpl, err := template.New(filepath.Base(path)).
		Funcs(template.FuncMap(funcs())).
		Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("html engine: parse %s: %w", path, err)
	}
	return &htmlHandle{tpl: tpl}, nil
}

type htmlHandle struct {
	tpl *template.Template
}

func (h *htmlHandle) Render(self any, locals map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := h.tpl.Execute(&buf, Scope(self, locals)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
