package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Gongwasubash/restro/internal/domain"
	"github.com/Gongwasubash/restro/internal/session"
)

type contextKey string

const (
	userContextKey        contextKey = "user"
	cartSessionContextKey contextKey = "cart_session"
)

// CartCookieName identifies the browsing session that owns a cart. It is
// separate from the identity cookie: anonymous visitors have carts too.
const CartCookieName = "restro_cart"

// Identity resolves the signed identity cookie on every request and, when
// one parses cleanly, puts the user into the request context. It never
// rejects a request; absent or corrupt identities just stay anonymous.
func Identity(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := sessions.Current(r); ok {
				ctx := context.WithValue(r.Context(), userContextKey, &u)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser retrieves the identity from the request context; nil-safe for
// anonymous requests.
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userContextKey).(*domain.User)
	return u, ok
}

// CartSession assigns every visitor a stable cart session id via cookie and
// carries it in the request context.
func CartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(CartCookieName); err == nil && cookie.Value != "" {
			id = cookie.Value
		} else {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     CartCookieName,
				Value:    id,
				Path:     "/",
				Expires:  time.Now().Add(7 * 24 * time.Hour),
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), cartSessionContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CartSessionID returns the cart session id set by CartSession.
func CartSessionID(ctx context.Context) string {
	id, _ := ctx.Value(cartSessionContextKey).(string)
	return id
}
