package gateway

import (
	"context"

	"github.com/Gongwasubash/restro/internal/domain"
)

// Typed wrappers over Call, one per action the backend script exposes.
// The action names and payload keys are the wire contract and must not drift.

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.call(ctx, "getProducts", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// AddProduct creates a catalog item; the gateway assigns the id.
func (c *Client) AddProduct(ctx context.Context, p domain.Product) error {
	return c.call(ctx, "addProduct", map[string]any{"product": p}, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, p domain.Product) error {
	return c.call(ctx, "updateProduct", map[string]any{"product": p}, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.call(ctx, "deleteProduct", map[string]any{"id": id}, nil)
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.call(ctx, "getCategories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) AddCategory(ctx context.Context, name string) error {
	return c.call(ctx, "addCategory", map[string]any{"name": name}, nil)
}

// Login authenticates against the gateway. The credential check itself is
// the gateway's business; a failure surfaces as a CallError with the
// server-provided message.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	var data struct {
		User domain.User `json:"user"`
	}
	err := c.call(ctx, "login", map[string]any{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return domain.User{}, err
	}
	return data.User, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	var data struct {
		User domain.User `json:"user"`
	}
	err := c.call(ctx, "register", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return domain.User{}, err
	}
	return data.User, nil
}

// CreateOrder submits an order and returns the server-assigned order id.
// A success reply means the order is durably recorded on the gateway side.
func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (string, error) {
	var data struct {
		OrderID string `json:"orderId"`
	}
	if err := c.call(ctx, "createOrder", map[string]any{"order": order}, &data); err != nil {
		return "", err
	}
	return data.OrderID, nil
}

// Orders fetches orders, optionally filtered to one customer. An empty
// customerID asks for all orders (admin view).
func (c *Client) Orders(ctx context.Context, customerID string) ([]domain.Order, error) {
	payload := map[string]any{}
	if customerID != "" {
		payload["customerId"] = customerID
	}
	var orders []domain.Order
	if err := c.call(ctx, "getOrders", payload, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return c.call(ctx, "updateOrderStatus", map[string]any{
		"orderId": orderID,
		"status":  string(status),
	}, nil)
}
