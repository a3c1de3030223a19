package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gongwasubash/restro/internal/api/middleware"
	"github.com/Gongwasubash/restro/internal/cart"
	"github.com/Gongwasubash/restro/internal/catalog"
	"github.com/Gongwasubash/restro/internal/checkout"
	"github.com/Gongwasubash/restro/internal/domain"
	"github.com/Gongwasubash/restro/internal/gateway"
	"github.com/Gongwasubash/restro/internal/orders"
	"github.com/Gongwasubash/restro/internal/session"
)

// fakeGateway stands in for the remote endpoint across every service the
// router wires together.
type fakeGateway struct {
	mu sync.Mutex

	products   []domain.Product
	categories []domain.Category
	orders     []domain.Order

	loginUser domain.User
	loginErr  error

	createOrderID  string
	createOrderErr error
	createdOrders  []domain.Order
}

func (f *fakeGateway) Products(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeGateway) Categories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeGateway) AddProduct(ctx context.Context, p domain.Product) error { return nil }

func (f *fakeGateway) UpdateProduct(ctx context.Context, p domain.Product) error { return nil }

func (f *fakeGateway) DeleteProduct(ctx context.Context, id string) error { return nil }

func (f *fakeGateway) AddCategory(ctx context.Context, name string) error { return nil }

func (f *fakeGateway) Login(ctx context.Context, email, password string) (domain.User, error) {
	return f.loginUser, f.loginErr
}

func (f *fakeGateway) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	return f.loginUser, f.loginErr
}

func (f *fakeGateway) CreateOrder(ctx context.Context, order domain.Order) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createOrderErr != nil {
		return "", f.createOrderErr
	}
	f.createdOrders = append(f.createdOrders, order)
	return f.createOrderID, nil
}

func (f *fakeGateway) createOrderCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.createdOrders)
}

func (f *fakeGateway) Orders(ctx context.Context, customerID string) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeGateway) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return nil
}

type harness struct {
	server *httptest.Server
	client *http.Client
	gw     *fakeGateway
}

func newHarness(t *testing.T, gw *fakeGateway, configured bool) *harness {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sessions := session.NewStore("0123456789abcdef0123456789abcdef", time.Hour)
	carts := cart.NewStore()

	router := NewRouter(RouterConfig{
		Handlers:     NewHandlers(catalog.NewService(gw), orders.NewService(gw), checkout.NewService(gw, logger), carts, logger),
		AuthHandlers: NewAuthHandlers(gw, sessions, logger),
		Admin:        NewAdminHandlers(catalog.NewService(gw), orders.NewService(gw), logger),
		Sessions:     sessions,
		Configured:   configured,
		Logger:       logger,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := server.Client()
	client.Jar = jar
	// Guard redirects must be observable, not followed.
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &harness{server: server, client: client, gw: gw}
}

func (h *harness) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, h.server.URL+path, reader)
	require.NoError(t, err)
	resp, err := h.client.Do(req)
	require.NoError(t, err)
	return resp
}

func (h *harness) login(t *testing.T, u domain.User) {
	t.Helper()
	h.gw.loginUser = u
	resp := h.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    u.Email,
		"password": "secret",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func menuGateway() *fakeGateway {
	return &fakeGateway{
		products: []domain.Product{
			{ID: "p1", Name: "Momo", Category: "Starters", Price: decimal.NewFromInt(350), ActiveStatus: true},
			{ID: "p2", Name: "Thakali Set", Category: "Mains", Price: decimal.NewFromInt(900), ActiveStatus: true},
		},
		categories: []domain.Category{{ID: "c1", Name: "Starters"}},
	}
}

func aCustomer() domain.User {
	return domain.User{ID: "u-1", Name: "Asha", Email: "asha@example.com", Role: domain.RoleCustomer}
}

func anAdmin() domain.User {
	return domain.User{ID: "u-9", Name: "Subash", Email: "subash@example.com", Role: domain.RoleAdmin}
}

// ============================================
// Setup notice mode
// ============================================

func TestRouter_UnconfiguredServesSetupNotice(t *testing.T) {
	h := newHarness(t, &fakeGateway{}, false)

	resp := h.do(t, http.MethodGet, "/api/menu", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, middleware.SetupNotice, body["error"])

	// Health stays reachable for the operator.
	health := h.do(t, http.MethodGet, "/healthz", nil)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

// ============================================
// Guard enforcement at the routing boundary
// ============================================

func TestRouter_GuardRedirects(t *testing.T) {
	t.Run("anonymous orders redirects to login", func(t *testing.T) {
		h := newHarness(t, menuGateway(), true)
		resp := h.do(t, http.MethodGet, "/api/orders", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("anonymous admin redirects to login", func(t *testing.T) {
		h := newHarness(t, menuGateway(), true)
		resp := h.do(t, http.MethodGet, "/api/admin/dashboard", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("customer admin redirects to login", func(t *testing.T) {
		h := newHarness(t, menuGateway(), true)
		h.login(t, aCustomer())
		resp := h.do(t, http.MethodGet, "/api/admin/dashboard", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("admin dashboard renders for admin", func(t *testing.T) {
		h := newHarness(t, menuGateway(), true)
		h.login(t, anAdmin())
		resp := h.do(t, http.MethodGet, "/api/admin/dashboard", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("signed-in customer hitting login is sent home", func(t *testing.T) {
		h := newHarness(t, menuGateway(), true)
		h.login(t, aCustomer())
		resp := h.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "x@y.z", "password": "p"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})
}

// ============================================
// Session lifecycle over HTTP
// ============================================

func TestRouter_SessionLifecycle(t *testing.T) {
	h := newHarness(t, menuGateway(), true)

	// Anonymous: no identity.
	resp := h.do(t, http.MethodGet, "/api/auth/me", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	h.login(t, aCustomer())

	me := decodeBody[domain.User](t, h.do(t, http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, "u-1", me.ID)
	assert.Equal(t, domain.RoleCustomer, me.Role)

	out := h.do(t, http.MethodPost, "/api/auth/logout", nil)
	out.Body.Close()

	resp = h.do(t, http.MethodGet, "/api/auth/me", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_CorruptIdentityCookieIsAnonymous(t *testing.T) {
	h := newHarness(t, menuGateway(), true)

	req, err := http.NewRequest(http.MethodGet, h.server.URL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "corrupt-garbage"})

	resp, err := h.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ============================================
// Cart and checkout over HTTP
// ============================================

func TestRouter_CartFlow(t *testing.T) {
	h := newHarness(t, menuGateway(), true)

	resp := h.do(t, http.MethodPost, "/api/cart/items", map[string]string{"productId": "p1"})
	c := decodeBody[CartResponse](t, resp)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Count)

	resp = h.do(t, http.MethodPost, "/api/cart/items", map[string]string{"productId": "p1"})
	c = decodeBody[CartResponse](t, resp)
	require.Len(t, c.Items, 1, "same product merges into one line")
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.True(t, c.Total.Equal(decimal.NewFromInt(700)))

	resp = h.do(t, http.MethodPatch, "/api/cart/items/p1", map[string]int{"delta": -10})
	c = decodeBody[CartResponse](t, resp)
	assert.Equal(t, 1, c.Items[0].Quantity, "quantity clamps at one")

	resp = h.do(t, http.MethodDelete, "/api/cart/items/p1", nil)
	c = decodeBody[CartResponse](t, resp)
	assert.Empty(t, c.Items)
	assert.True(t, c.Total.IsZero())
}

func TestRouter_AddUnknownProduct(t *testing.T) {
	h := newHarness(t, menuGateway(), true)
	resp := h.do(t, http.MethodPost, "/api/cart/items", map[string]string{"productId": "nope"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_CheckoutAnonymousRedirectsWithoutGatewayCall(t *testing.T) {
	gw := menuGateway()
	gw.createOrderID = "ORD-1"
	h := newHarness(t, gw, true)

	r := h.do(t, http.MethodPost, "/api/cart/items", map[string]string{"productId": "p1"})
	r.Body.Close()

	resp := h.do(t, http.MethodPost, "/api/checkout", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Zero(t, gw.createOrderCalls())
}

func TestRouter_CheckoutSuccessClearsCart(t *testing.T) {
	gw := menuGateway()
	gw.createOrderID = "ORD-7"
	h := newHarness(t, gw, true)
	h.login(t, aCustomer())

	r := h.do(t, http.MethodPost, "/api/cart/items", map[string]string{"productId": "p2"})
	r.Body.Close()

	resp := h.do(t, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "ORD-7", body["orderId"])
	assert.Equal(t, "/orders", body["redirect"])

	c := decodeBody[CartResponse](t, h.do(t, http.MethodGet, "/api/cart", nil))
	assert.Empty(t, c.Items)
}

func TestRouter_CheckoutFailureKeepsCartAndSurfacesMessage(t *testing.T) {
	gw := menuGateway()
	gw.createOrderErr = &gateway.CallError{Action: "createOrder", Message: "stock unavailable"}
	h := newHarness(t, gw, true)
	h.login(t, aCustomer())

	r := h.do(t, http.MethodPost, "/api/cart/items", map[string]string{"productId": "p1"})
	r.Body.Close()

	resp := h.do(t, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "stock unavailable", body["error"])

	c := decodeBody[CartResponse](t, h.do(t, http.MethodGet, "/api/cart", nil))
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p1", c.Items[0].ID)
}

func TestRouter_CheckoutEmptyCart(t *testing.T) {
	gw := menuGateway()
	h := newHarness(t, gw, true)
	h.login(t, aCustomer())

	resp := h.do(t, http.MethodPost, "/api/checkout", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, gw.createOrderCalls())
}

// ============================================
// Menu
// ============================================

func TestRouter_Menu(t *testing.T) {
	h := newHarness(t, menuGateway(), true)

	menu := decodeBody[catalog.Menu](t, h.do(t, http.MethodGet, "/api/menu?category=Starters", nil))
	require.Len(t, menu.Products, 1)
	assert.Equal(t, "Momo", menu.Products[0].Name)
	assert.Len(t, menu.Categories, 1)
}
