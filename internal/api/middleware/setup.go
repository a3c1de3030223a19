package middleware

import (
	"encoding/json"
	"net/http"
)

// SetupNotice is the blocking message served while the gateway endpoint is
// unset. It is a configuration problem, not a per-action failure, so every
// domain route reports it until the operator fixes the environment.
const SetupNotice = "Backend not configured. Set GATEWAY_URL to your script deployment URL and restart."

// RequireConfigured short-circuits all wrapped routes with the setup notice
// until the gateway endpoint is configured.
func RequireConfigured(configured bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if configured {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": SetupNotice})
		})
	}
}
