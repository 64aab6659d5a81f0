package engine

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownEngine substitutes {{ }} actions with html/template and converts
// the result from Markdown to HTML with goldmark.  Substituted values are
// HTML-escaped, so a string local holding user input cannot inject markup;
// pass template.HTML for trusted fragments.  Raw HTML written in the
// template itself passes through goldmark unchanged.
type MarkdownEngine struct {
	sub *HTMLEngine
	md  goldmark.Markdown
}

// NewMarkdown returns a Markdown engine with GitHub-Flavored Markdown
// enabled.
func NewMarkdown() *MarkdownEngine {
	return &MarkdownEngine{
		sub: NewHTML(),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Compile parses the template at path.
func (e *MarkdownEngine) Compile(path string) (Handle, error) {
	h, err := e.sub.Compile(path)
	if err != nil {
		return nil, err
	}
	return &markdownHandle{sub: h, md: e.md}, nil
}

type markdownHandle struct {
	sub Handle
	md  goldmark.Markdown
}

func (h *markdownHandle) Render(self any, locals map[string]any) (string, error) {
	src, err := h.sub.Render(self, locals)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown engine: convert: %w", err)
	}
	return buf.String(), nil
}
