// components/home/home.go
//
// Home Component – the landing page.
//
// The body is Markdown rendered through goldmark, the surrounding layout
// is html/template, and the footer is a package-level template captured
// with inline.Here so any presenter in the package can reuse it.
package home

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/presenter/internal/component"
	"github.com/yanizio/presenter/internal/engine"
	"github.com/yanizio/presenter/internal/inline"
	"github.com/yanizio/presenter/internal/requestinfo"
)

var _ component.Component = (*Comp)(nil)

type Comp struct{}

func (c *Comp) Name() string { return "home" }

func (c *Comp) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		cache, ok := inline.CacheFrom(r.Context())
		if !ok {
			http.Error(w, inline.ErrNoWorker.Error(), http.StatusServiceUnavailable)
			return
		}
		browser := ""
		if ri := requestinfo.FromContext(r.Context()); ri != nil {
			browser = ri.UA.Browser
		}

		out, err := NewPage(cache, browser).Layout()
		if err != nil {
			zap.S().Errorw("home page render failed", "err", err)
			http.Error(w, "template error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(out))
	})
	return r
}

// Page is the landing-page presenter.
type Page struct {
	inline.View
	Browser string
	Now     time.Time
}

func NewPage(c *inline.Cache, browser string) *Page {
	p := &Page{Browser: browser, Now: time.Now()}
	p.View = inline.NewView(p, c)
	return p
}

// Layout wraps Body and Footer in the HTML shell.
func (p *Page) Layout() (string, error) {
	body, err := p.Body()
	if err != nil {
		return "", err
	}
	footer, err := p.Footer()
	if err != nil {
		return "", err
	}
	return p.HTML(inline.Locals{"body": template.HTML(body), "footer": template.HTML(footer)})
	// <!doctype html>
	// <html>
	// <head><meta charset="utf-8"><title>presenter</title></head>
	// <body>
	// {{ .body }}
	// {{ .footer }}
	// </body>
	// </html>
}

// Body is the Markdown section of the page.
func (p *Page) Body() (string, error) {
	return p.Markdown(inline.Locals{"formats": engine.Default().Formats()})
	// # Inline templates
	//
	// Every page on this server is rendered from templates written as
	// comments under the call that renders them.
	//
	// Available formats:
	//
	// {{ range .formats }}- `{{ . }}`
	// {{ end }}
	// {{ if .self.Browser }}You are browsing with **{{ .self.Browser }}**.{{ end }}
	// See [request details](/debug).
}

var footerSite = inline.Here()
// <footer><small>&copy; {{ .year }} · rendered by worker {{ .worker }}</small></footer>

// Footer renders the shared footer captured above.
func (p *Page) Footer() (string, error) {
	return p.At(footerSite, engine.FormatHTML, inline.Locals{"year": p.Now.Year(), "worker": p.Cache().ID()})
}

func init() {
	component.Register(&Comp{})
}
