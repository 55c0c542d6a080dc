package repository

import (
	"context"
	"sync"
	"time"

	"orderdesk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var _ OrderRepository = (*MemoryOrderRepository)(nil)

// MemoryOrderRepository is an in-process order store. It is used for local runs and tests.
type MemoryOrderRepository struct {
	mu      sync.RWMutex
	orders  map[string]*model.Order
	nextSeq int64
	now     func() time.Time
	logger  zerolog.Logger
}

// NewMemoryOrderRepository creates an empty in-memory order repository.
func NewMemoryOrderRepository(logger zerolog.Logger) *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]*model.Order),
		now:    time.Now,
		logger: logger.With().Str("repository", "order-memory").Logger(),
	}
}

// WithClock overrides the creation timestamp source.
func (r *MemoryOrderRepository) WithClock(now func() time.Time) *MemoryOrderRepository {
	r.now = now
	return r
}

func (r *MemoryOrderRepository) Create(_ context.Context, draft *model.OrderDraft) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSeq++
	order := &model.Order{
		ID:           uuid.New().String(),
		Seq:          r.nextSeq,
		CustomerName: draft.CustomerName,
		Phone:        draft.Phone,
		Address:      draft.Address,
		Products:     draft.Products,
		Courier:      draft.Courier,
		TotalPrice:   copyPrice(draft.TotalPrice),
		Status:       model.StatusPending,
		CreatedAt:    r.now().UTC(),
	}
	r.orders[order.ID] = order

	r.logger.Debug().Str("order_id", order.ID).Msg("order created successfully")

	clone := cloneOrder(order)
	return &clone, nil
}

func (r *MemoryOrderRepository) ListAll(_ context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]model.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, cloneOrder(order))
	}
	return list, nil
}

func (r *MemoryOrderRepository) GetByID(_ context.Context, id string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	clone := cloneOrder(order)
	return &clone, nil
}

func (r *MemoryOrderRepository) UpdateStatus(_ context.Context, id string, status model.Status) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	order.Status = status

	r.logger.Debug().Str("order_id", id).Str("status", string(status)).Msg("order status updated")

	clone := cloneOrder(order)
	return &clone, nil
}

// Import stores a pre-existing order as-is, keeping its id, timestamp and raw status.
// Seq is assigned when zero.
func (r *MemoryOrderRepository) Import(order model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.Seq == 0 {
		r.nextSeq++
		order.Seq = r.nextSeq
	} else if order.Seq > r.nextSeq {
		r.nextSeq = order.Seq
	}
	clone := cloneOrder(&order)
	r.orders[order.ID] = &clone
}

func cloneOrder(o *model.Order) model.Order {
	clone := *o
	clone.TotalPrice = copyPrice(o.TotalPrice)
	clone.Status = model.NormalizeStatus(string(o.Status))
	return clone
}

func copyPrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
