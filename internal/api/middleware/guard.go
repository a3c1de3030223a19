package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Gongwasubash/restro/internal/nav"
)

// Guard enforces the route-access policy for one area. It is the only place
// role checks happen; handlers behind it can assume the decision was
// "render". Redirect decisions come back as 303 with a Location header and
// a JSON body, so both browsers and API clients can follow them.
func Guard(area nav.Area) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := CurrentUser(r.Context())
			decision := nav.Decide(identity, area)
			if !decision.Allow {
				Redirect(w, decision.RedirectTo)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Redirect writes a guard redirect response.
func Redirect(w http.ResponseWriter, to string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", to)
	w.WriteHeader(http.StatusSeeOther)
	_ = json.NewEncoder(w).Encode(map[string]string{"redirect": to})
}
