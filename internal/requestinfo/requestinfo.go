//
//  internal/requestinfo/requestinfo.go
//
//  Per-request metadata handed to presenters: user-agent fingerprint,
//  client IP with optional geolocation, primary language, URL, and
//  timestamp.  The structs are inert, so they are safe to log, to
//  JSON-encode, and to expose to inline templates.
//
//  Dependencies
//  • internal/ua                       (uasurfer wrapper)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup, optional)
//
package requestinfo

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/oschwald/geoip2-golang"

	"github.com/yanizio/presenter/internal/ua"
)

// Geo holds IP-based geolocation hints.  CountryISO and City stay empty
// when no GeoLite2 database is configured or the address has no match.
type Geo struct {
	IP         net.IP `json:"ip"`
	CountryISO string `json:"country,omitempty"`
	City       string `json:"city,omitempty"`
}

// RequestInfo is what Enrich attaches to the request context.
type RequestInfo struct {
	UA          ua.Info   `json:"ua"`
	Geo         Geo       `json:"geo"`
	PrimaryLang string    `json:"lang,omitempty"`
	URL         *url.URL  `json:"-"`
	Path        string    `json:"path"`
	Timestamp   time.Time `json:"ts"`
}

// GeoReader is the subset of *geoip2.Reader Enrich needs.
type GeoReader interface {
	City(ip net.IP) (*geoip2.City, error)
}

// OpenGeo opens a GeoLite2-City database.  An empty path returns a nil
// reader and no error; lookups are then skipped.
func OpenGeo(path string) (*geoip2.Reader, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	return geoip2.Open(path)
}

type ctxKey struct{}

// FromContext returns the value stored by Enrich, or nil if the
// middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

// NewContext stores info in ctx.  Tests use it to fake a request.
func NewContext(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

// primaryLang extracts the first language subtag before any ";q=" rule.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	tag, _, _ := strings.Cut(al, ",")
	tag, _, _ = strings.Cut(tag, ";")
	return strings.ToLower(strings.TrimSpace(tag))
}

// lookupGeo returns best-effort Geo data.
func lookupGeo(r GeoReader, ip net.IP) Geo {
	g := Geo{IP: ip}
	if r == nil || ip == nil {
		return g
	}
	rec, err := r.City(ip)
	if err != nil || rec == nil {
		return g
	}
	g.CountryISO = rec.Country.IsoCode
	g.City = rec.City.Names["en"]
	return g
}
