package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderdesk/internal/model"
	"orderdesk/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder validates the draft and stores it. Nothing is written when validation fails.
func (s *orderService) CreateOrder(ctx context.Context, draft *model.OrderDraft) (*model.Order, error) {
	clean, err := s.validateDraft(draft)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.Create(ctx, clean)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, model.ErrStoreWriteFailed.Wrap(err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("courier", string(order.Courier)).
		Msg("new order received")

	return order, nil
}

// ListOrders returns the full order set.
func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, model.ErrStoreReadFailed.Wrap(err)
	}

	for i := range orders {
		orders[i].Status = model.NormalizeStatus(string(orders[i].Status))
	}

	return orders, nil
}

// GetByID retrieves an order by its ID.
func (s *orderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to get order")
		return nil, model.ErrStoreReadFailed.Wrap(err)
	}

	order.Status = model.NormalizeStatus(string(order.Status))
	return order, nil
}

// ApplyTransition validates current -> requested against the lifecycle graph and persists
// the new status. Only the status changes; prior statuses are not recorded.
func (s *orderService) ApplyTransition(ctx context.Context, id string, requested model.Status) (*model.Order, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(requested) {
		s.logger.Warn().
			Str("order_id", id).
			Str("from", string(current.Status)).
			Str("to", string(requested)).
			Msg("rejected status transition")
		return nil, model.ErrInvalidTransition.WithMessage(
			fmt.Sprintf("cannot move order from %s to %s", current.Status, requested))
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, requested)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Error().
			Err(err).
			Str("order_id", id).
			Str("to", string(requested)).
			Msg("failed to persist status")
		return nil, model.ErrStoreWriteFailed.Wrap(err)
	}

	updated.Status = model.NormalizeStatus(string(updated.Status))

	s.logger.Info().
		Str("order_id", id).
		Str("from", string(current.Status)).
		Str("to", string(updated.Status)).
		Msg("order status updated")

	return updated, nil
}

// validateDraft trims the free-text fields and checks the intake rules.
func (s *orderService) validateDraft(draft *model.OrderDraft) (*model.OrderDraft, error) {
	if draft == nil {
		return nil, model.ErrValidationFailed.WithMessage("order request is nil")
	}

	clean := &model.OrderDraft{
		CustomerName: strings.TrimSpace(draft.CustomerName),
		Phone:        strings.TrimSpace(draft.Phone),
		Address:      strings.TrimSpace(draft.Address),
		Products:     strings.TrimSpace(draft.Products),
		Courier:      model.Courier(strings.TrimSpace(string(draft.Courier))),
		TotalPrice:   draft.TotalPrice,
	}

	required := []struct {
		field string
		value string
	}{
		{"customerName", clean.CustomerName},
		{"phone", clean.Phone},
		{"address", clean.Address},
		{"products", clean.Products},
	}
	for _, r := range required {
		if r.value == "" {
			s.logger.Warn().Str("field", r.field).Msg("intake rejected: missing field")
			return nil, model.ErrValidationFailed.WithMessage(r.field + " is required")
		}
	}

	if !clean.Courier.Valid() {
		s.logger.Warn().Str("courier", string(clean.Courier)).Msg("intake rejected: unknown courier")
		return nil, model.ErrValidationFailed.WithMessage("unknown courier: " + string(clean.Courier))
	}

	if clean.TotalPrice != nil && *clean.TotalPrice < 0 {
		return nil, model.ErrValidationFailed.WithMessage("totalPrice must not be negative")
	}

	return clean, nil
}
