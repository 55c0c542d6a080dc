package service

import (
	"context"

	"orderdesk/internal/model"
)

// OrderService defines operations for order intake and lifecycle management.
type OrderService interface {
	// CreateOrder validates an intake draft and persists it as a Pending order.
	CreateOrder(ctx context.Context, draft *model.OrderDraft) (*model.Order, error)

	// ListOrders returns every order with its status normalised. Ordering is unspecified.
	ListOrders(ctx context.Context) ([]model.Order, error)

	// GetByID retrieves a single order.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// ApplyTransition moves an order to the requested status if the lifecycle graph allows it.
	ApplyTransition(ctx context.Context, id string, requested model.Status) (*model.Order, error)
}
