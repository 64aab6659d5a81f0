// internal/middleware/security.go
//
// Security-header middleware.
//
// Seeds industry-standard headers on every response:
//
//   • Content-Security-Policy   –  self-only policy, inline styles allowed
//     so presenters may emit small style attributes
//   • X-Frame-Options           –  click-jacking defence
//   • X-Content-Type-Options    –  MIME-sniffing defence
//   • Referrer-Policy           –  drops path/query from Referer
//   • Permissions-Policy        –  disables powerful features by default
//
// Notes
// -----
// • Headers are seeded *before* next.ServeHTTP, because anything added after
//   the first Write is silently dropped.  Handlers that need a different
//   value simply Set their own.
// • HSTS is left to the TLS-terminating proxy; the demo server speaks HTTP.

// Package middleware holds small, composable HTTP wrappers.
package middleware

import "net/http"

var securityHeaders = [...][2]string{
	{"Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:; object-src 'none'; base-uri 'self'; frame-ancestors 'none'"},
	{"X-Frame-Options", "DENY"},
	{"X-Content-Type-Options", "nosniff"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Permissions-Policy", "geolocation=(), microphone=(), camera=()"},
}

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range securityHeaders {
			if h.Get(kv[0]) == "" {
				h.Set(kv[0], kv[1])
			}
		}
		next.ServeHTTP(w, r)
	})
}
