// Package cart holds the in-memory shopping cart state. Carts are
// per-session, never persisted, and do not survive a restart; the only
// durable record of a cart is the snapshot submitted inside an order.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Gongwasubash/restro/internal/domain"
)

// Cart is an insertion-ordered collection of line items, at most one per
// catalog item. All mutations run to completion under the lock, so no two
// of them can interleave mid-update.
type Cart struct {
	mu    sync.Mutex
	items []domain.OrderItem
}

func New() *Cart {
	return &Cart{}
}

// Add puts one unit of p into the cart. If a line item for p already
// exists its quantity grows by one and its unit price is left alone: the
// first-seen price wins until the line is removed. Add never fails.
func (c *Cart) Add(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, domain.OrderItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: 1,
	})
}

// Remove deletes the line item with the given id. Removing an absent id is
// a no-op, not an error.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity adjusts the matched line item's quantity by delta, clamped
// to a minimum of 1. Dropping a line entirely requires Remove; decrementing
// can never do it. Absent ids are a no-op.
func (c *Cart) UpdateQuantity(id string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			q := c.items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.items[i].Quantity = q
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []domain.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is recomputed on every call; it is never cached.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count is the badge number: the sum of all quantities.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Store hands out one Cart per browsing session.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the cart for the given session id, creating it on first use.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}

// Drop forgets a session's cart entirely.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
