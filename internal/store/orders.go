package store

import (
	"context"

	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/order"
)

// CreateOrder prepends the new order so the collection stays
// most-recent-first, snapshots locally, and queues the remote write.
func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	record := cloneOrder(o)

	s.mu.Lock()
	next := make([]order.Order, 0, len(s.orders)+1)
	next = append(next, *record)
	next = append(next, s.orders...)
	s.orders = next
	err := s.snapshot(keyOrders, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.enqueueSync(keyOrders, func(ctx context.Context) error {
		return s.remote.Orders.Create(ctx, record)
	})
	s.changed(keyOrders)
	return nil
}

// GetOrder returns one order from memory.
func (s *Store) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			return cloneOrder(&s.orders[i]), nil
		}
	}
	return nil, order.ErrNotFound
}

// ListOrders returns all orders, most recent first.
func (s *Store) ListOrders(ctx context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]order.Order(nil), s.orders...), nil
}

// ListOrdersByUser returns one user's orders, most recent first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID string) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]order.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// UpdateOrder replaces the matching order by rebuilding the collection,
// never mutating in place.
func (s *Store) UpdateOrder(ctx context.Context, o *order.Order) error {
	record := cloneOrder(o)

	s.mu.Lock()
	found := false
	next := make([]order.Order, len(s.orders))
	for i := range s.orders {
		if s.orders[i].ID == record.ID {
			next[i] = *record
			found = true
			continue
		}
		next[i] = s.orders[i]
	}
	if !found {
		s.mu.Unlock()
		return order.ErrNotFound
	}
	s.orders = next
	err := s.snapshot(keyOrders, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.enqueueSync(keyOrders, func(ctx context.Context) error {
		return s.remote.Orders.Update(ctx, record)
	})
	s.changed(keyOrders)
	return nil
}

// cloneOrder copies an order including its item slice so callers and the
// store never alias each other's items.
func cloneOrder(o *order.Order) *order.Order {
	c := *o
	c.Items = make([]cart.Item, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}

// orderView adapts the store to order.Repository.
type orderView struct{ s *Store }

func (v orderView) Create(ctx context.Context, o *order.Order) error { return v.s.CreateOrder(ctx, o) }
func (v orderView) GetByID(ctx context.Context, id string) (*order.Order, error) {
	return v.s.GetOrder(ctx, id)
}
func (v orderView) List(ctx context.Context) ([]order.Order, error) { return v.s.ListOrders(ctx) }
func (v orderView) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	return v.s.ListOrdersByUser(ctx, userID)
}
func (v orderView) Update(ctx context.Context, o *order.Order) error { return v.s.UpdateOrder(ctx, o) }

// OrderStore exposes the store as an order.Repository.
func (s *Store) OrderStore() order.Repository { return orderView{s} }
