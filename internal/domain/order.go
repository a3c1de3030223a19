package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the four statuses the gateway accepts.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single line of an order: a catalog item reference plus the
// quantity chosen and the unit price captured when the item entered the cart.
type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is constructed by this layer at checkout and persisted by the
// gateway. ItemsJSON carries the cart snapshot exactly as it was submitted;
// once created the snapshot is immutable from this side.
type Order struct {
	OrderID       string          `json:"orderId"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName,omitempty"`
	ItemsJSON     string          `json:"itemsJSON"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentStatus string          `json:"paymentStatus"`
	OrderStatus   OrderStatus     `json:"orderStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Items decodes the snapshot carried in ItemsJSON. A missing or malformed
// snapshot yields an empty slice, not an error; the order header is still
// usable for history views.
func (o Order) Items() []OrderItem {
	if o.ItemsJSON == "" {
		return nil
	}
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		return nil
	}
	return items
}
