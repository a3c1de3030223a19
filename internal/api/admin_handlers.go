package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Gongwasubash/restro/internal/catalog"
	"github.com/Gongwasubash/restro/internal/domain"
	"github.com/Gongwasubash/restro/internal/gateway"
	"github.com/Gongwasubash/restro/internal/orders"
)

// AdminHandlers serves the dashboard: catalog management and order status
// updates. Role gating happens in the router's guard, not here.
type AdminHandlers struct {
	catalog *catalog.Service
	orders  *orders.Service
	log     *logrus.Logger
}

func NewAdminHandlers(catalogSvc *catalog.Service, orderSvc *orders.Service, logger *logrus.Logger) *AdminHandlers {
	return &AdminHandlers{catalog: catalogSvc, orders: orderSvc, log: logger}
}

type DashboardResponse struct {
	Products   []domain.Product  `json:"products"`
	Orders     []domain.Order    `json:"orders"`
	Categories []domain.Category `json:"categories"`
}

// GetDashboard returns the three collections the dashboard tabs render:
// the full catalog (inactive items included), every order newest first,
// and the category list.
func (h *AdminHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.AllProducts(r.Context())
	if err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}
	allOrders, err := h.orders.All(r.Context())
	if err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}
	categories, err := h.catalog.CategoryList(r.Context())
	if err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, DashboardResponse{
		Products:   products,
		Orders:     allOrders,
		Categories: categories,
	})
}

func (h *AdminHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalog.CreateProduct(r.Context(), p); err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}

	h.log.WithField("product", p.Name).Info("Admin: product created")
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Product added"})
}

func (h *AdminHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/admin/products/")

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p.ID = id

	if err := h.catalog.UpdateProduct(r.Context(), p); err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

func (h *AdminHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/admin/products/")

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}

	h.log.WithField("product_id", id).Info("Admin: product deleted")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (h *AdminHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalog.AddCategory(r.Context(), strings.TrimSpace(req.Name)); err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Category added"})
}

// UpdateOrderStatus is the admin-owned status transition; customers never
// reach this route.
func (h *AdminHandlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/admin/orders/")
	id = strings.TrimSuffix(id, "/status")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status)); err != nil {
		respondJSONError(w, gateway.UserMessage(err), statusFor(err))
		return
	}

	h.log.WithFields(logrus.Fields{
		"order_id": id,
		"status":   req.Status,
	}).Info("Admin: order status updated")

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}
