package repository

import (
	"context"

	"orderdesk/internal/model"
)

// OrderRepository defines the interface for order data access operations.
// Implementations return model.ErrOrderNotFound when the id is unknown.
type OrderRepository interface {
	// Create persists a new order. The store assigns ID, Seq, CreatedAt and the Pending status.
	Create(ctx context.Context, draft *model.OrderDraft) (*model.Order, error)

	// ListAll returns every order. Ordering is unspecified.
	ListAll(ctx context.Context) ([]model.Order, error)

	// GetByID retrieves a single order.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// UpdateStatus overwrites the status of one order and returns the updated row.
	UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Order, error)
}
