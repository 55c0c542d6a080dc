package repository

import (
	"context"
	"errors"
	"fmt"

	"orderdesk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `id, seq, customer_name, phone, address, products, courier, total_price, status, created_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create inserts a new order with the default status.
func (r *orderRepository) Create(ctx context.Context, draft *model.OrderDraft) (*model.Order, error) {
	query := `
		INSERT INTO orders (id, customer_name, phone, address, products, courier, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + orderColumns

	var courier *string
	if draft.Courier != model.CourierNone {
		c := string(draft.Courier)
		courier = &c
	}

	id := uuid.New().String()
	row := r.pool.QueryRow(ctx, query,
		id,
		draft.CustomerName,
		draft.Phone,
		draft.Address,
		draft.Products,
		courier,
		draft.TotalPrice,
		string(model.StatusPending),
	)

	order, err := scanOrder(row)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.ID).Msg("order created successfully")

	return order, nil
}

// ListAll retrieves every order.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, model.ErrOrderNotFound
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// UpdateStatus overwrites the status column of a single order.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Order, error) {
	query := `UPDATE orders SET status = $2 WHERE id = $1 RETURNING ` + orderColumns

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, model.ErrOrderNotFound
		}
		r.logger.Error().
			Err(err).
			Str("order_id", id).
			Str("status", string(status)).
			Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	r.logger.Debug().
		Str("order_id", id).
		Str("status", string(order.Status)).
		Msg("order status updated")

	return order, nil
}

// scanOrder reads one row in orderColumns order. Nullable columns are normalised here.
func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order   model.Order
		courier *string
		status  *string
	)

	err := row.Scan(
		&order.ID,
		&order.Seq,
		&order.CustomerName,
		&order.Phone,
		&order.Address,
		&order.Products,
		&courier,
		&order.TotalPrice,
		&status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if courier != nil {
		order.Courier = model.Courier(*courier)
	}

	raw := ""
	if status != nil {
		raw = *status
	}
	order.Status = model.NormalizeStatus(raw)

	return &order, nil
}
