package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Gongwasubash/restro/internal/api/middleware"
	"github.com/Gongwasubash/restro/internal/nav"
	"github.com/Gongwasubash/restro/internal/session"
)

type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	Admin        *AdminHandlers
	Sessions     *session.Store
	Configured   bool
	Logger       *logrus.Logger
}

// NewRouter wires routes, the role guard and the ambient middleware. Each
// route is tagged with the navigation area it belongs to; the guard is
// evaluated there and nowhere else.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	h := cfg.Handlers
	auth := cfg.AuthHandlers
	admin := cfg.Admin

	guarded := func(area nav.Area, fn http.HandlerFunc) http.Handler {
		return middleware.Guard(area)(fn)
	}

	mux.Handle("/api/home", guarded(nav.AreaHome, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetHome(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/menu", guarded(nav.AreaMenu, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetMenu(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Auth: login and register sit behind the login-page area so an
	// already-authenticated visitor is redirected instead of re-signed-in.
	mux.Handle("/api/auth/login", guarded(nav.AreaLogin, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			auth.Login(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/auth/register", guarded(nav.AreaLogin, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			auth.Register(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			auth.Logout(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			auth.Me(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Cart: viewing and editing is open to everyone; only checkout is gated.
	mux.Handle("/api/cart", guarded(nav.AreaCart, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetCart(w, r)
		case http.MethodDelete:
			h.ClearCart(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/cart/items", guarded(nav.AreaCart, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.AddToCart(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/cart/items/", guarded(nav.AreaCart, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			h.UpdateCartItem(w, r)
		case http.MethodDelete:
			h.RemoveFromCart(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/checkout", guarded(nav.AreaCheckout, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Checkout(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/orders", guarded(nav.AreaOrders, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetOrders(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Admin dashboard
	mux.Handle("/api/admin/dashboard", guarded(nav.AreaAdmin, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			admin.GetDashboard(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/admin/products", guarded(nav.AreaAdmin, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			admin.CreateProduct(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/admin/products/", guarded(nav.AreaAdmin, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			admin.UpdateProduct(w, r)
		case http.MethodDelete:
			admin.DeleteProduct(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/admin/categories", guarded(nav.AreaAdmin, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			admin.CreateCategory(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/api/admin/orders/", guarded(nav.AreaAdmin, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			admin.UpdateOrderStatus(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// The setup notice blocks every domain route until the gateway
	// endpoint is configured; the health check stays reachable.
	var apiHandler http.Handler = middleware.RequireConfigured(cfg.Configured)(mux)

	root := http.NewServeMux()
	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	root.Handle("/", apiHandler)

	chain := middleware.RequestLogger(cfg.Logger)(
		middleware.Identity(cfg.Sessions)(
			middleware.CartSession(root),
		),
	)
	return chain
}
