package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// ERBEngine evaluates ERB-style templates with pongo2.  Tags are rewritten
// before parsing:
//
//	<%= expr %>   →  {{ expr }}      output
//	<% tag %>     →  {% tag %}       control flow, pongo2 tags
//	<%# text %>   →  {# text #}      comment
//
// Expressions are pongo2 expressions, so arithmetic and bare names work:
// <%= 2 + 2 %>, <%= local %>, <%= self.Name %>.  Blocks close with the
// pongo2 keyword (<% if ok %>yes<% endif %>).  Output is not escaped.
type ERBEngine struct {
	mu  sync.Mutex // TemplateSet.FromBytes writes set state
	set *pongo2.TemplateSet
}

// ErrUnterminatedTag is returned for a <% without its closing %>.
var ErrUnterminatedTag = errors.New("erb engine: unterminated tag")

// NewERB returns a pongo2-backed ERB engine with its own template set.
func NewERB() *ERBEngine {
	registerFiltersOnce.Do(registerDefaultFilters)
	return &ERBEngine{
		set: pongo2.NewSet("inline-erb", pongo2.MustNewLocalFileSystemLoader("")),
	}
}

// Compile parses the template at path.
func (e *ERBEngine) Compile(path string) (Handle, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erb engine: read %s: %w", path, err)
	}
	body, err := translateERB(string(src))
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, filepath.Base(path))
	}
	e.mu.Lock()
	tpl, err := e.set.FromBytes([]byte("{% autoescape off %}" + body + "{% endautoescape %}"))
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("erb engine: parse %s: %w", filepath.Base(path), err)
	}
	return &djangoHandle{tpl: tpl}, nil
}

// translateERB rewrites ERB tags into pongo2 syntax.  Literal text that
// would open a pongo2 tag ("{{", "{%", "{#") is escaped with templatetag.
func translateERB(src string) (string, error) {
	var b strings.Builder
	b.Grow(len(src) + 32)
	for {
		i := strings.Index(src, "<%")
		if i < 0 {
			escapeText(&b, src)
			return b.String(), nil
		}
		escapeText(&b, src[:i])
		src = src[i+2:]

		open, closer := "{%", "%}"
		switch {
		case strings.HasPrefix(src, "="):
			open, closer = "{{", "}}"
			src = src[1:]
		case strings.HasPrefix(src, "#"):
			open, closer = "{#", "#}"
			src = src[1:]
		}

		j := strings.Index(src, "%>")
		if j < 0 {
			return "", ErrUnterminatedTag
		}
		b.WriteString(open)
		b.WriteString(src[:j])
		b.WriteString(closer)
		src = src[j+2:]
	}
}

func escapeText(b *strings.Builder, text string) {
	for i := 0; i < len(text); i++ {
		if text[i] == '{' && i+1 < len(text) && strings.IndexByte("{%#", text[i+1]) >= 0 {
			b.WriteString("{% templatetag openbrace %}")
			continue
		}
		b.WriteByte(text[i])
	}
}
