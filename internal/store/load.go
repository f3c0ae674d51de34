package store

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ketabino/bookshop/internal/domain/book"
	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/coupon"
	"github.com/ketabino/bookshop/internal/domain/order"
	"github.com/ketabino/bookshop/internal/domain/payment"
	"github.com/ketabino/bookshop/internal/domain/user"
)

// Load performs the startup bulk load. Every resource is fetched from the
// remote backend concurrently and independently; a failed fetch falls
// back to the local snapshot, and an absent snapshot leaves the default
// empty collection. The application always comes up, possibly with
// partial data.
func (s *Store) Load(ctx context.Context) error {
	if s.remote == nil {
		return s.loadLocal()
	}

	g, ctx := errgroup.WithContext(ctx)

	loadResource(ctx, g, s, keyBooks,
		s.remote.Books.List,
		func(v []book.Book) { s.books = v })

	loadResource(ctx, g, s, keyCategories,
		s.remote.Categories.List,
		func(v []book.Category) { s.categories = v })

	loadResource(ctx, g, s, keyOrders,
		s.remote.Orders.List,
		func(v []order.Order) { s.orders = v })

	loadResource(ctx, g, s, keyUsers,
		s.remote.Users.List,
		func(v []user.User) { s.users = v })

	loadResource(ctx, g, s, keyCoupons,
		s.remote.Coupons.List,
		func(v []coupon.Coupon) { s.coupons = v })

	loadResource(ctx, g, s, keySettings,
		func(ctx context.Context) (payment.Settings, error) {
			p, err := s.remote.Settings.Get(ctx)
			if err != nil {
				return payment.Settings{}, err
			}
			return *p, nil
		},
		func(v payment.Settings) { s.settings = v })

	// Carts never reach the remote backend; the snapshot only provides
	// continuity across restarts.
	g.Go(func() error {
		carts := make(map[string][]cart.Item)
		if ok, err := s.local.Get(keyCarts, &carts); err != nil || !ok {
			return nil
		}
		s.mu.Lock()
		s.carts = carts
		s.mu.Unlock()
		return nil
	})

	return g.Wait()
}

// loadResource fetches one resource remotely, assigns it under the store
// lock, and refreshes the local snapshot. On remote failure it restores
// whatever snapshot exists and reports success; only snapshot corruption
// aborts the load.
func loadResource[T any](ctx context.Context, g *errgroup.Group, s *Store, key string, fetch func(context.Context) (T, error), assign func(T)) {
	g.Go(func() error {
		v, err := fetch(ctx)
		if err != nil {
			s.lg.Warn("remote load failed, using local snapshot",
				zap.String("resource", key),
				zap.Error(err),
			)
			var snap T
			ok, lerr := s.local.Get(key, &snap)
			if lerr != nil {
				return lerr
			}
			if !ok {
				return nil
			}
			s.mu.Lock()
			assign(snap)
			s.mu.Unlock()
			return nil
		}

		s.mu.Lock()
		assign(v)
		s.mu.Unlock()
		return s.snapshot(key, v)
	})
}

// loadLocal restores every collection from the local snapshot store.
func (s *Store) loadLocal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, v := range map[string]any{
		keyBooks:      &s.books,
		keyCategories: &s.categories,
		keyOrders:     &s.orders,
		keyUsers:      &s.users,
		keyCoupons:    &s.coupons,
		keySettings:   &s.settings,
		keyCarts:      &s.carts,
	} {
		if _, err := s.local.Get(key, v); err != nil {
			return err
		}
	}
	return nil
}
