package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// Built-in format tokens.
const (
	FormatText     = "tmpl"
	FormatERB      = "erb"
	FormatHTML     = "html"
	FormatDjango   = "django"
	FormatMarkdown = "md"
)

// TextEngine compiles text/template sources.  Output is not escaped.
type TextEngine struct{}

// NewText returns a text/template engine.
func NewText() *TextEngine { return &TextEngine{} }

// Compile parses the template at path.
func (e *TextEngine) Compile(path string) (Handle, error) {
	tpl, err := e.parse(path)
	if err != nil {
		return nil, err
	}
	return &textHandle{tpl: tpl}, nil
}

func (e *TextEngine) parse(path string) (*template.Template, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text engine: read %s: %w", path, err)
	}
	tpl, err := template.New(filepath.Base(path)).
		Funcs(template.FuncMap(funcs())).
		Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("text engine: parse %s: %w", path, err)
	}
	return tpl, nil
}

type textHandle struct {
	tpl *template.Template
}

func (h *textHandle) Render(self any, locals map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := h.tpl.Execute(&buf, Scope(self, locals)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
