package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketabino/bookshop/internal/domain/coupon"
)

func item(price int64, discountPercent, quantity int) Item {
	return Item{
		BookID:          "b1",
		Title:           "Test Book",
		Price:           decimal.NewFromInt(price),
		DiscountPercent: discountPercent,
		Quantity:        quantity,
	}
}

func TestLineTotal_NoDiscount(t *testing.T) {
	got := LineTotal(item(120000, 0, 2))
	assert.True(t, got.Equal(decimal.NewFromInt(240000)), "got %s", got)
}

func TestLineTotal_ItemDiscount(t *testing.T) {
	// 100000 with 10% off, twice.
	got := LineTotal(item(100000, 10, 2))
	assert.True(t, got.Equal(decimal.NewFromInt(180000)), "got %s", got)
}

func TestNewQuote_EmptyCart(t *testing.T) {
	_, err := NewQuote(nil, nil)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewQuote_NoCoupon(t *testing.T) {
	q, err := NewQuote([]Item{item(100000, 10, 2)}, nil)
	require.NoError(t, err)

	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(180000)), "subtotal %s", q.Subtotal)
	assert.True(t, q.DiscountAmount.IsZero(), "discount %s", q.DiscountAmount)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(180000)), "total %s", q.Total)
}

func TestNewQuote_CouponStacksOnItemDiscount(t *testing.T) {
	// Per-item discount first, then the coupon percentage on the subtotal:
	// 100000 * 0.9 * 2 = 180000, minus 20% = 144000.
	c := &coupon.Coupon{Code: "BOOKLOVER20", DiscountPercent: 20, Active: true}

	q, err := NewQuote([]Item{item(100000, 10, 2)}, c)
	require.NoError(t, err)

	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(180000)), "subtotal %s", q.Subtotal)
	assert.True(t, q.DiscountAmount.Equal(decimal.NewFromInt(36000)), "discount %s", q.DiscountAmount)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(144000)), "total %s", q.Total)
}

func TestNewQuote_MultipleLines(t *testing.T) {
	items := []Item{
		item(120000, 10, 1),
		{BookID: "b2", Title: "Other", Price: decimal.NewFromInt(85000), DiscountPercent: 0, Quantity: 3},
	}

	q, err := NewQuote(items, nil)
	require.NoError(t, err)

	// 108000 + 255000
	assert.True(t, q.Total.Equal(decimal.NewFromInt(363000)), "total %s", q.Total)
}

func TestNewQuote_FullDiscountNeverNegative(t *testing.T) {
	c := &coupon.Coupon{Code: "FREE", DiscountPercent: 100, Active: true}

	q, err := NewQuote([]Item{item(50000, 0, 1)}, c)
	require.NoError(t, err)

	assert.True(t, q.Total.IsZero(), "total %s", q.Total)
}

func TestNewQuote_RoundsToWholeUnits(t *testing.T) {
	// 99999 with 15% coupon: discount 14999.85 rounds to 15000.
	c := &coupon.Coupon{Code: "STUDENT15", DiscountPercent: 15, Active: true}

	q, err := NewQuote([]Item{item(99999, 0, 1)}, c)
	require.NoError(t, err)

	assert.True(t, q.DiscountAmount.Equal(decimal.NewFromInt(15000)), "discount %s", q.DiscountAmount)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(84999)), "total %s", q.Total)
}
