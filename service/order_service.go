package service

import (
	"context"
	"errors"
	"log"
	"time"

	"frame-storefront/models"
	"frame-storefront/repository"
)

// ErrOrderForbidden is returned when a user asks for an order that is not theirs
var ErrOrderForbidden = errors.New("order belongs to another user")

// OrderService places orders from carts and moves them through their lifecycle
type OrderService struct {
	orders repository.OrderRepositoryInterface
	now    func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(orders repository.OrderRepositoryInterface) *OrderService {
	return &OrderService{orders: orders, now: time.Now}
}

// Checkout turns the user's cart into an order
func (s *OrderService) Checkout(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.OrderResponse, error) {
	order, err := s.orders.Checkout(ctx, userID, req, s.now())
	if err != nil {
		log.Printf("❌ Checkout: user_id=%s: %v", userID, err)
		return nil, err
	}
	log.Printf("💰 Checkout: order id=%s total=%s (%d lines)", order.ID, order.Total.StringFixed(2), len(order.Lines))
	return order, nil
}

// Get returns an order. Users only see their own orders; admins see all.
func (s *OrderService) Get(ctx context.Context, userID, role, orderID string) (*models.OrderResponse, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && order.UserID != userID {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

// ListMine returns the user's orders, newest first
func (s *OrderService) ListMine(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAll returns every order, optionally filtered by status
func (s *OrderService) ListAll(ctx context.Context, status *string) ([]models.Order, error) {
	return s.orders.List(ctx, status)
}

// UpdateStatus moves an order to a new status
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	log.Printf("🔄 UpdateStatus: order id=%s is now %s", order.ID, order.Status)
	return order, nil
}
