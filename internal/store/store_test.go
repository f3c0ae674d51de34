package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketabino/bookshop/internal/domain/book"
	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/coupon"
	"github.com/ketabino/bookshop/internal/domain/order"
	"github.com/ketabino/bookshop/internal/domain/payment"
	"github.com/ketabino/bookshop/internal/domain/user"
	"github.com/ketabino/bookshop/internal/localstore"
)

// newLocalStore builds a local-only store over a temp directory.
func newLocalStore(t *testing.T, onChange ChangeFunc) *Store {
	t.Helper()
	local, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	return New(local, nil, onChange, nil)
}

func testBook(id, slug string) *book.Book {
	return &book.Book{
		ID:    id,
		Title: "Book " + id,
		Price: decimal.NewFromInt(100000),
		Slug:  slug,
	}
}

func testOrder(id, userID string) *order.Order {
	return &order.Order{
		ID:     id,
		UserID: userID,
		Items: []cart.Item{{
			BookID:   "b1",
			Price:    decimal.NewFromInt(100000),
			Quantity: 1,
		}},
		TotalAmount:   decimal.NewFromInt(100000),
		Status:        order.StatusProcessing,
		PaymentMethod: order.PaymentOnline,
	}
}

// --- Catalog ---

func TestBooks_UpsertListGet(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.UpsertBook(ctx, testBook("b1", "book-one")))
	require.NoError(t, s.UpsertBook(ctx, testBook("b2", "book-two")))

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)

	b, err := s.GetBookBySlug(ctx, "book-two")
	require.NoError(t, err)
	assert.Equal(t, "b2", b.ID)

	_, err = s.GetBookBySlug(ctx, "missing")
	require.ErrorIs(t, err, book.ErrNotFound)
}

func TestBooks_UpsertReplaces(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.UpsertBook(ctx, testBook("b1", "book-one")))

	updated := testBook("b1", "book-one")
	updated.Title = "Renamed"
	require.NoError(t, s.UpsertBook(ctx, updated))

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Renamed", books[0].Title)
}

func TestBooks_Delete(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.UpsertBook(ctx, testBook("b1", "book-one")))
	require.NoError(t, s.DeleteBook(ctx, "b1"))

	_, err := s.GetBookByID(ctx, "b1")
	require.ErrorIs(t, err, book.ErrNotFound)
}

func TestBooks_ListReturnsCopy(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.UpsertBook(ctx, testBook("b1", "book-one")))

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	books[0].Title = "mutated"

	again, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Book b1", again[0].Title)
}

// --- Orders ---

func TestOrders_MostRecentFirst(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.CreateOrder(ctx, testOrder("o1", "u1")))
	require.NoError(t, s.CreateOrder(ctx, testOrder("o2", "u1")))
	require.NoError(t, s.CreateOrder(ctx, testOrder("o3", "u2")))

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []string{"o3", "o2", "o1"}, []string{orders[0].ID, orders[1].ID, orders[2].ID})

	mine, err := s.ListOrdersByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "o2", mine[0].ID)
}

func TestOrders_UpdateRebuilds(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.CreateOrder(ctx, testOrder("o1", "u1")))

	o, err := s.GetOrder(ctx, "o1")
	require.NoError(t, err)
	o.Status = order.StatusShipped
	require.NoError(t, s.UpdateOrder(ctx, o))

	got, err := s.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, got.Status)
}

func TestOrders_UpdateMissing(t *testing.T) {
	s := newLocalStore(t, nil)

	err := s.UpdateOrder(context.Background(), testOrder("ghost", "u1"))
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrders_GetReturnsDeepCopy(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.CreateOrder(ctx, testOrder("o1", "u1")))

	o, err := s.GetOrder(ctx, "o1")
	require.NoError(t, err)
	o.Items[0].Quantity = 99

	again, err := s.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

// --- Users and notifications ---

func testUser(id, email string) *user.User {
	return &user.User{ID: id, Name: "User " + id, Email: email, PasswordHash: "x"}
}

func TestUsers_EmailUnique(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("u1", "a@example.com")))

	err := s.CreateUser(ctx, testUser("u2", "a@example.com"))
	require.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestNotify_AppendsUnread(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("u1", "a@example.com")))
	require.NoError(t, s.Notify(ctx, "u1", "Order shipped", "On its way.", "success"))

	u, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, u.Notifications, 1)

	n := u.Notifications[0]
	assert.Equal(t, "Order shipped", n.Title)
	assert.Equal(t, "success", n.Type)
	assert.False(t, n.IsRead)
	assert.NotEmpty(t, n.ID)
}

func TestNotify_UnknownUser(t *testing.T) {
	s := newLocalStore(t, nil)

	err := s.Notify(context.Background(), "ghost", "t", "m", "info")
	require.ErrorIs(t, err, user.ErrNotFound)
}

// --- Coupons ---

func TestCoupons_FindNormalized(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.UpsertCoupon(ctx, &coupon.Coupon{Code: " welcome10 ", DiscountPercent: 10, Active: true}))

	c, err := s.FindCoupon(ctx, "Welcome10")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", c.Code)

	_, err = s.FindCoupon(ctx, "NOPE")
	require.ErrorIs(t, err, coupon.ErrInvalidCoupon)
}

func TestCoupons_FindReturnsInactive(t *testing.T) {
	// Activity is the validator's concern; the store returns what it has.
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.UpsertCoupon(ctx, &coupon.Coupon{Code: "OLD", DiscountPercent: 5, Active: false}))

	c, err := s.FindCoupon(ctx, "OLD")
	require.NoError(t, err)
	assert.False(t, c.Active)
}

// --- Settings and carts ---

func TestSettings_RoundTrip(t *testing.T) {
	s := newLocalStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.SaveSettings(ctx, &payment.Settings{
		CardNumber:    "6037-0000-0000-0000",
		AccountHolder: "Bookshop Ltd",
		BankName:      "Mellat",
	}))

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mellat", got.BankName)
}

func TestCarts_SaveAndClear(t *testing.T) {
	s := newLocalStore(t, nil)

	items := []cart.Item{{BookID: "b1", Quantity: 2}}
	require.NoError(t, s.SaveCart("u1", items))
	assert.Len(t, s.Cart("u1"), 1)

	require.NoError(t, s.ClearCart("u1"))
	assert.Empty(t, s.Cart("u1"))
}

// --- Change hook and persistence ---

func TestChangeHookFires(t *testing.T) {
	var changed []string
	s := newLocalStore(t, func(resource string) { changed = append(changed, resource) })
	ctx := context.Background()

	require.NoError(t, s.UpsertBook(ctx, testBook("b1", "book-one")))
	require.NoError(t, s.CreateOrder(ctx, testOrder("o1", "u1")))

	assert.Equal(t, []string{"books", "orders"}, changed)
}

func TestLoad_RestoresFromSnapshots(t *testing.T) {
	dir := t.TempDir()
	local, err := localstore.Open(dir)
	require.NoError(t, err)
	ctx := context.Background()

	first := New(local, nil, nil, nil)
	require.NoError(t, first.UpsertBook(ctx, testBook("b1", "book-one")))
	require.NoError(t, first.CreateOrder(ctx, testOrder("o1", "u1")))
	require.NoError(t, first.SaveCart("u1", []cart.Item{{BookID: "b1", Quantity: 1}}))

	// A fresh process over the same directory sees the same data.
	second := New(local, nil, nil, nil)
	require.NoError(t, second.Load(ctx))

	books, err := second.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	orders, err := second.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	assert.Len(t, second.Cart("u1"), 1)
}

func TestSyncStatus_LocalOnlyIdle(t *testing.T) {
	s := newLocalStore(t, nil)

	status := s.SyncStatus()
	assert.Zero(t, status.Pending)
	assert.Zero(t, status.Dropped)
	assert.Empty(t, status.LastError)
}
