package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Gongwasubash/restro/internal/api/middleware"
	"github.com/Gongwasubash/restro/internal/cart"
	"github.com/Gongwasubash/restro/internal/catalog"
	"github.com/Gongwasubash/restro/internal/checkout"
	"github.com/Gongwasubash/restro/internal/domain"
	"github.com/Gongwasubash/restro/internal/gateway"
	"github.com/Gongwasubash/restro/internal/nav"
	"github.com/Gongwasubash/restro/internal/orders"
)

// RecentOrdersCount caps the home page activity card.
const RecentOrdersCount = 2

type Handlers struct {
	catalog  *catalog.Service
	orders   *orders.Service
	checkout *checkout.Service
	carts    *cart.Store
	log      *logrus.Logger
}

func NewHandlers(catalogSvc *catalog.Service, orderSvc *orders.Service, checkoutSvc *checkout.Service, carts *cart.Store, logger *logrus.Logger) *Handlers {
	return &Handlers{
		catalog:  catalogSvc,
		orders:   orderSvc,
		checkout: checkoutSvc,
		carts:    carts,
		log:      logger,
	}
}

// Home Handlers

type HomeResponse struct {
	Specials     []domain.Product `json:"specials"`
	RecentOrders []domain.Order   `json:"recentOrders,omitempty"`
}

func (h *Handlers) GetHome(w http.ResponseWriter, r *http.Request) {
	specials, err := h.catalog.Specials(r.Context())
	if err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}

	resp := HomeResponse{Specials: specials}

	// The activity card only shows for signed-in customers; a failed
	// fetch degrades to a home page without it.
	if u, ok := middleware.CurrentUser(r.Context()); ok && u.Role == domain.RoleCustomer {
		if recent, err := h.orders.Recent(r.Context(), u.ID, RecentOrdersCount); err == nil {
			resp.RecentOrders = recent
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// Menu Handlers

func (h *Handlers) GetMenu(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	menu, err := h.catalog.Menu(r.Context(), category)
	if err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, menu)
}

// Cart Handlers

type CartResponse struct {
	Items []domain.OrderItem `json:"items"`
	Total decimal.Decimal    `json:"total"`
	Count int                `json:"count"`
}

func (h *Handlers) currentCart(r *http.Request) *cart.Cart {
	return h.carts.Get(middleware.CartSessionID(r.Context()))
}

func cartResponse(c *cart.Cart) CartResponse {
	items := c.Items()
	if items == nil {
		items = []domain.OrderItem{}
	}
	return CartResponse{Items: items, Total: c.Total(), Count: c.Count()}
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse(h.currentCart(r)))
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		respondJSONError(w, "productId is required", http.StatusBadRequest)
		return
	}

	product, found, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}
	if !found {
		respondJSONError(w, "Product not found", http.StatusNotFound)
		return
	}

	c := h.currentCart(r)
	c.Add(product)
	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/cart/items/")

	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c := h.currentCart(r)
	c.UpdateQuantity(id, req.Delta)
	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/cart/items/")
	c := h.currentCart(r)
	c.Remove(id)
	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.currentCart(r)
	c.Clear()
	respondJSON(w, http.StatusOK, cartResponse(c))
}

// Checkout Handler

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		middleware.Redirect(w, nav.PathLogin)
		return
	}

	sessionID := middleware.CartSessionID(r.Context())
	orderID, err := h.checkout.Submit(r.Context(), sessionID, *user, h.carts.Get(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotSignedIn):
			middleware.Redirect(w, nav.PathLogin)
		case errors.Is(err, checkout.ErrEmptyCart):
			respondJSONError(w, "Your cart is empty", http.StatusBadRequest)
		case errors.Is(err, checkout.ErrSubmitInFlight):
			respondJSONError(w, "Your order is already being placed", http.StatusConflict)
		default:
			respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"orderId":  orderID,
		"redirect": "/orders",
	})
}

// Order Handlers

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		middleware.Redirect(w, nav.PathLogin)
		return
	}

	history, err := h.orders.History(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}
	if history == nil {
		history = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, history)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// statusFor maps service errors to HTTP statuses: gateway-reported and
// transport failures are upstream problems, everything else from the
// services is a validation miss at the input boundary.
func statusFor(err error) int {
	var ce *gateway.CallError
	if errors.As(err, &ce) {
		return http.StatusBadGateway
	}
	switch {
	case errors.Is(err, catalog.ErrMissingName),
		errors.Is(err, catalog.ErrMissingCategory),
		errors.Is(err, catalog.ErrMissingID),
		errors.Is(err, catalog.ErrNegativePrice),
		errors.Is(err, catalog.ErrMissingCategoryName),
		errors.Is(err, orders.ErrMissingOrderID),
		errors.Is(err, orders.ErrUnknownStatus):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
