// components/debug/debug.go
//
// Debug Component – shows the request's UA, IP, and Geo details.
//
// The page is rendered by the Request presenter, whose markup lives in
// comments right under each render call.  Edit a template while the
// server runs and the next request picks it up.
package debug

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/presenter/internal/component"
	"github.com/yanizio/presenter/internal/inline"
	"github.com/yanizio/presenter/internal/requestinfo"
)

// compile-time assertion
var _ component.Component = (*Comp)(nil)

// Comp implements component.Component; no state needed.
type Comp struct{}

func (c *Comp) Name() string { return "debug" }

func (c *Comp) Routes() chi.Router {
	r := chi.NewRouter()

	// HTML page
	r.Get("/debug", func(w http.ResponseWriter, r *http.Request) {
		cache, ok := inline.CacheFrom(r.Context())
		if !ok {
			http.Error(w, inline.ErrNoWorker.Error(), http.StatusServiceUnavailable)
			return
		}
		ri := requestinfo.FromContext(r.Context())
		if ri == nil {
			http.Error(w, "request info not available", http.StatusInternalServerError)
			return
		}

		out, err := NewRequest(cache, ri).Page()
		if err != nil {
			zap.S().Errorw("debug page render failed", "err", err)
			http.Error(w, "template error", statusFor(err))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(out))
	})

	// JSON endpoint
	r.Get("/api/debug", func(w http.ResponseWriter, r *http.Request) {
		ri := requestinfo.FromContext(r.Context())
		if ri == nil {
			http.Error(w, "request info not available", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ri); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	return r
}

// statusFor maps inline errors onto HTTP codes.
func statusFor(err error) int {
	if errors.Is(err, inline.ErrNoWorker) || errors.Is(err, inline.ErrPoolClosed) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Request presents one request's metadata.
type Request struct {
	inline.View
	Info *requestinfo.RequestInfo
}

// NewRequest binds info to the worker cache c.
func NewRequest(c *inline.Cache, info *requestinfo.RequestInfo) *Request {
	p := &Request{Info: info}
	p.View = inline.NewView(p, c)
	return p
}

// Location is "City, CC", "CC", or "unknown".
func (p *Request) Location() string {
	switch g := p.Info.Geo; {
	case g.City != "" && g.CountryISO != "":
		return g.City + ", " + g.CountryISO
	case g.CountryISO != "":
		return g.CountryISO
	}
	return "unknown"
}

// Page renders the full document.
func (p *Request) Page() (string, error) {
	agent, err := p.Agent()
	if err != nil {
		return "", err
	}
	return p.HTML(inline.Locals{"title": "Request details", "agent": template.HTML(agent)})
	// <!doctype html>
	// <html>
	// <head><title>{{ .title }}</title></head>
	// <body>
	//   <h1>{{ .title }}</h1>
	//   <ul>
	//     <li><strong>Path:</strong> {{ .self.Info.Path }}</li>
	//     <li><strong>IP:</strong> {{ .self.Info.Geo.IP }}</li>
	//     <li><strong>Location:</strong> {{ .self.Location }}</li>
	//     <li><strong>Language:</strong> {{ or .self.Info.PrimaryLang "n/a" }}</li>
	//   </ul>
	//   {{ .agent }}
	//   <p><small>worker {{ .self.Cache.ID }}</small></p>
	// </body>
	// </html>
}

// Agent renders the user-agent table.
func (p *Request) Agent() (string, error) {
	return p.HTML(inline.Locals{"ua": p.Info.UA})
	// <table class="ua">
	//   <tr><th>Browser</th><td>{{ .ua.Browser }} {{ .ua.Version }}</td></tr>
	//   <tr><th>OS</th><td>{{ .ua.OS }} {{ .ua.OSVersion }}</td></tr>
	//   <tr><th>Device</th><td>{{ .ua.Device }} ({{ .ua.Platform }})</td></tr>
	//   <tr><th>Bot</th><td>{{ if .ua.IsBot }}yes{{ else }}no{{ end }}</td></tr>
	// </table>
}

// Register component at package init.
func init() {
	component.Register(&Comp{})
}
