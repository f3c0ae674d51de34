package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/order"
)

const (
	orderColumns = `id, user_id, items, total_amount, status, created_at,
		payment_method, receipt_image, admin_note,
		ship_full_name, ship_mobile, ship_address`

	createOrderSQL = `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	getOrderByIDSQL = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	listOrdersSQL = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	listOrdersByUserSQL = `SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = $1 ORDER BY created_at DESC`

	updateOrderSQL = `UPDATE orders SET
		status = $2, receipt_image = $3, admin_note = $4
		WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
// Items are serialized to JSON for storage in the JSONB column; totals
// stay NUMERIC so decimal amounts round-trip exactly.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, itemsJSON, o.TotalAmount, string(o.Status), o.CreatedAt,
		string(o.PaymentMethod), o.ReceiptImage, o.AdminNote,
		o.ShippingAddress.FullName, o.ShippingAddress.Mobile, o.ShippingAddress.Address,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// GetByID fetches one order.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("finding order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("finding order %q: %w", id, err)
	}
	return &o, nil
}

// List returns all orders, most recent first.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	return r.list(ctx, listOrdersSQL)
}

// ListByUser returns one user's orders, most recent first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	return r.list(ctx, listOrdersByUserSQL, userID)
}

func (r *OrderRepository) list(ctx context.Context, sql string, args ...any) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// Update writes the mutable order fields: status, receipt image, and the
// admin note. Items and total are immutable after creation and are never
// touched here.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.pool.Exec(ctx, updateOrderSQL,
		o.ID, string(o.Status), o.ReceiptImage, o.AdminNote,
	)
	if err != nil {
		return fmt.Errorf("updating order %q: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o         order.Order
		itemsJSON []byte
		status    string
		method    string
	)
	err := row.Scan(
		&o.ID, &o.UserID, &itemsJSON, &o.TotalAmount, &status, &o.CreatedAt,
		&method, &o.ReceiptImage, &o.AdminNote,
		&o.ShippingAddress.FullName, &o.ShippingAddress.Mobile, &o.ShippingAddress.Address,
	)
	if err != nil {
		return order.Order{}, err
	}

	o.Status = order.Status(status)
	o.PaymentMethod = order.PaymentMethod(method)

	var items []cart.Item
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling order items: %w", err)
	}
	o.Items = items
	return o, nil
}
