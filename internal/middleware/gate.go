// File: internal/middleware/gate.go
package middleware

import (
	"log"
	"net/http"
	"strings"
)

// gateExemptPrefixes are paths the edge gate never touches: the public pages,
// static assets, and the API (which carries its own session check).
var gateExemptPrefixes = []string{
	"/static/",
	"/api/",
}

var gateExemptPaths = map[string]bool{
	"/":         true,
	"/login":    true,
	"/register": true,
	"/logout":   true,
	"/health":   true,
}

// NewEdgeGate is the request-level authentication filter. Instead of pattern
// matching cookie names it validates the session cookie outright; anything
// unauthenticated is redirected to the home page. The gate must never
// hard-fail a request: any internal panic is treated as allow-through.
func NewEdgeGate(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gateDecision(sessions, r) {
				next.ServeHTTP(w, r)
				return
			}

			http.Redirect(w, r, "/", http.StatusSeeOther)
		})
	}
}

// gateDecision reports whether the request may pass. It recovers from its own
// panics and allows the request through in that case.
func gateDecision(sessions SessionValidator, r *http.Request) (allow bool) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("[EdgeGate] Internal error processing %s: %v; allowing request", r.URL.Path, err)
			allow = true
		}
	}()

	path := r.URL.Path
	if gateExemptPaths[path] {
		return true
	}
	for _, prefix := range gateExemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	if _, ok := resolveSession(sessions, r); ok {
		return true
	}

	log.Printf("[EdgeGate] Redirecting unauthenticated request from %s to /", path)
	return false
}
