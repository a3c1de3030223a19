// Package orders is the order-history and status-update surface. Orders are
// owned by the gateway; this service only fetches, sorts and forwards.
package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Gongwasubash/restro/internal/domain"
)

var (
	ErrMissingOrderID = errors.New("order id is required")
	ErrUnknownStatus  = errors.New("unknown order status")
)

type Gateway interface {
	Orders(ctx context.Context, customerID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// History returns the customer's orders, newest first.
func (s *Service) History(ctx context.Context, customerID string) ([]domain.Order, error) {
	orders, err := s.gw.Orders(ctx, customerID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

// Recent returns at most n of the customer's latest orders, for the home
// page activity card.
func (s *Service) Recent(ctx context.Context, customerID string, n int) ([]domain.Order, error) {
	orders, err := s.History(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(orders) > n {
		orders = orders[:n]
	}
	return orders, nil
}

// All returns every order, newest first. Admin dashboard only.
func (s *Service) All(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.gw.Orders(ctx, "")
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

// UpdateStatus moves an order to the given status. Status transitions are
// owned by the admin-facing flow; customers never reach this path.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if orderID == "" {
		return ErrMissingOrderID
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return s.gw.UpdateOrderStatus(ctx, orderID, status)
}

func sortNewestFirst(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
