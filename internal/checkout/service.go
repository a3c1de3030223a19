// Package checkout runs the order submission flow: a single linear sequence
// with one retry-free gateway call. The flow is atomic from the cart's
// perspective: the cart is cleared only after the gateway confirms the
// order, and left exactly as it was on any failure.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Gongwasubash/restro/internal/cart"
	"github.com/Gongwasubash/restro/internal/domain"
)

var (
	ErrNotSignedIn    = errors.New("checkout requires a signed-in customer")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrSubmitInFlight = errors.New("an order submission is already in flight")
)

// OrderCreator is the one gateway call this flow issues.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order domain.Order) (string, error)
}

type Service struct {
	gw  OrderCreator
	log *logrus.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewService(gw OrderCreator, logger *logrus.Logger) *Service {
	return &Service{
		gw:       gw,
		log:      logger,
		inflight: make(map[string]struct{}),
	}
}

// Submit places the order for the given session's cart and returns the
// server-assigned order id.
//
// Preconditions: an identity must be present and the cart non-empty; both
// are rejected before the gateway is contacted. While one submission for a
// session is in flight, further submissions for the same session are
// refused; unrelated sessions are unaffected.
func (s *Service) Submit(ctx context.Context, sessionID string, user domain.User, c *cart.Cart) (string, error) {
	if user.ID == "" {
		return "", ErrNotSignedIn
	}
	if c.Empty() {
		return "", ErrEmptyCart
	}

	if !s.begin(sessionID) {
		return "", ErrSubmitInFlight
	}
	defer s.end(sessionID)

	// Snapshot once; total is computed from the same snapshot so the
	// submitted order is internally consistent even if the cart mutates
	// while the request is out.
	items := c.Items()
	snapshot, err := json.Marshal(items)
	if err != nil {
		return "", err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	order := domain.Order{
		CustomerID:    user.ID,
		CustomerName:  user.Name,
		ItemsJSON:     string(snapshot),
		TotalPrice:    total,
		PaymentStatus: string(domain.StatusPending),
		OrderStatus:   domain.StatusPending,
	}

	orderID, err := s.gw.CreateOrder(ctx, order)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"customer_id": user.ID,
			"items":       len(items),
		}).Warnf("Checkout: order submission failed: %v", err)
		return "", err
	}

	// Confirmed durable on the gateway side; only now does the cart go.
	c.Clear()

	s.log.WithFields(logrus.Fields{
		"order_id":    orderID,
		"customer_id": user.ID,
		"total":       total.String(),
	}).Info("Checkout: order placed")

	return orderID, nil
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *Service) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}
