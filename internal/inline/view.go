package inline

import "github.com/yanizio/presenter/internal/engine"

// View is the presenter base.  Embed it and initialise it with NewView so
// the format methods know which presenter to evaluate against and which
// worker cache to compile into.
//
// Every format method resolves the line in the presenter method that
// called it.  Do not wrap them in helpers: the extra frame would move the
// call site into the helper.
type View struct {
	self  any
	cache *Cache
}

// NewView binds self (usually the embedding presenter) to c.
func NewView(self any, c *Cache) View {
	return View{self: self, cache: c}
}

// Cache returns the worker cache the view renders through.
func (v View) Cache() *Cache { return v.cache }

// Render renders the template below the caller in the given format.
func (v View) Render(format string, locals any) (string, error) {
	return v.render(format, locals)
}

// Tmpl renders the caller's template with text/template.
func (v View) Tmpl(locals any) (string, error) { return v.render(engine.FormatText, locals) }

// ERB renders the caller's template with <%= %> delimiters.
func (v View) ERB(locals any) (string, error) { return v.render(engine.FormatERB, locals) }

// HTML renders the caller's template with html/template.
func (v View) HTML(locals any) (string, error) { return v.render(engine.FormatHTML, locals) }

// Django renders the caller's template with pongo2.
func (v View) Django(locals any) (string, error) { return v.render(engine.FormatDjango, locals) }

// Markdown renders the caller's template to HTML via Markdown.
func (v View) Markdown(locals any) (string, error) { return v.render(engine.FormatMarkdown, locals) }

// At renders the template below a site captured earlier, typically with
// Here.
func (v View) At(site CallSite, format string, locals any) (string, error) {
	return Render(v.cache, v.self, locals, site, format)
}

// render must be called directly by an exported format method.  Frames:
// 0 render, 1 the format method, 2 the presenter method.
func (v View) render(format string, locals any) (string, error) {
	site, err := Locate(2)
	if err != nil {
		return "", err
	}
	return Render(v.cache, v.self, locals, site, format)
}
