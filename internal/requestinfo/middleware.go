// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo.
//
/*
Context
--------
This handler sits right after the security headers and before the worker
checkout.  For every request it:

  1. Parses the User-Agent header and Accept-Language list.
  2. Extracts the left-most client IP from X-Forwarded-For or
     X-Real-IP, falling back to `r.RemoteAddr`.
  3. Performs a GeoLite2 lookup when a reader is configured.
  4. Stores a `*RequestInfo` value in `request.Context`, so presenters
     can read UA and Geo attributes without reparsing.

Instrumentation
---------------
At debug level each invocation logs the client IP, country, browser,
device, bot flag, and request path.
*/
package requestinfo

import (
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/presenter/internal/ua"
)

// Enrich returns middleware that attaches *RequestInfo.  geo may be nil.
func Enrich(geo GeoReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := &RequestInfo{
				UA:          ua.Parse(r.UserAgent()),
				Geo:         lookupGeo(geo, clientIP(r)),
				PrimaryLang: primaryLang(r.Header.Get("Accept-Language")),
				URL:         r.URL,
				Path:        r.URL.Path,
				Timestamp:   time.Now().UTC(),
			}

			zap.S().Debugw("request info",
				"ip", info.Geo.IP,
				"country", info.Geo.CountryISO,
				"browser", info.UA.Browser,
				"device", info.UA.Device,
				"bot", info.UA.IsBot,
				"path", r.URL.Path,
			)

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), info)))
		})
	}
}

// clientIP extracts the left-most address from X-Forwarded-For or
// X-Real-IP, falling back to r.RemoteAddr ("ip:port").
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}
