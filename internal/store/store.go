// Package store is the application state container: every collection the
// storefront works with is held in memory, mirrored synchronously to the
// local snapshot store, and synced best-effort to the remote backend
// through a retry queue. Reads always serve the latest local truth;
// remote failures never fail a request.
package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ketabino/bookshop/internal/domain/book"
	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/coupon"
	"github.com/ketabino/bookshop/internal/domain/order"
	"github.com/ketabino/bookshop/internal/domain/payment"
	"github.com/ketabino/bookshop/internal/domain/user"
	"github.com/ketabino/bookshop/internal/localstore"
)

// Local snapshot keys, one per persisted collection.
const (
	keyBooks      = "books"
	keyCategories = "categories"
	keyOrders     = "orders"
	keyUsers      = "users"
	keyCoupons    = "coupons"
	keySettings   = "payment-settings"
	keyCarts      = "carts"
)

// Remote bundles the per-resource remote repositories. A nil Remote puts
// the store in local-only mode: all sync tasks are skipped.
type Remote struct {
	Books      book.Repository
	Categories book.CategoryRepository
	Orders     order.Repository
	Users      user.Repository
	Coupons    coupon.Repository
	Settings   payment.Repository
}

// ChangeFunc is invoked after every committed mutation with the name of
// the changed resource. Used to drive real-time change subscriptions.
type ChangeFunc func(resource string)

// Store is the process-wide state container. There is one logical writer
// (the serving goroutine of the moment); the mutex serializes mutations
// so order placement and cart clearing never interleave.
type Store struct {
	mu sync.RWMutex

	books      []book.Book
	categories []book.Category
	orders     []order.Order // most-recent-first
	users      []user.User
	coupons    []coupon.Coupon
	settings   payment.Settings
	carts      map[string][]cart.Item

	local    *localstore.Store
	remote   *Remote
	onChange ChangeFunc
	lg       *zap.Logger

	queue *syncQueue
}

// New creates a Store over the given local snapshot store. remote may be
// nil for local-only mode; onChange may be nil when nothing subscribes.
func New(local *localstore.Store, remote *Remote, onChange ChangeFunc, lg *zap.Logger) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{
		carts:    make(map[string][]cart.Item),
		local:    local,
		remote:   remote,
		onChange: onChange,
		lg:       lg,
		queue:    newSyncQueue(lg),
	}
}

// snapshot writes a collection to the local store. Local persistence is
// synchronous: a failure here is surfaced to the caller, unlike remote
// sync which is queued.
func (s *Store) snapshot(key string, v any) error {
	return s.local.Put(key, v)
}

// changed fires the change hook outside the lock.
func (s *Store) changed(resource string) {
	if s.onChange != nil {
		s.onChange(resource)
	}
}
