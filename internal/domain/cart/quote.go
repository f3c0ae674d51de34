package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/ketabino/bookshop/internal/domain/coupon"
)

// ErrEmptyCart is returned when a quote is requested for an empty cart.
// Checkout is unreachable with an empty cart; callers must bounce the
// customer back to the cart view instead of quoting.
var ErrEmptyCart = errors.New("cart is empty")

var hundred = decimal.NewFromInt(100)

// Quote is the priced summary of a cart at checkout.
type Quote struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// LineTotal returns price * (1 - discount/100) * quantity for one line.
// The per-item discount applies to the unit price before summation.
func LineTotal(item Item) decimal.Decimal {
	unit := item.Price.Mul(hundred.Sub(decimal.NewFromInt(int64(item.DiscountPercent)))).Div(hundred)
	return unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// NewQuote prices the cart with an optional applied coupon. The coupon
// percentage applies to the discounted subtotal; a later coupon replaces
// an earlier one, so at most one discount is ever in effect. All amounts
// are rounded to whole currency units here and nowhere else.
func NewQuote(items []Item, c *coupon.Coupon) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item))
	}

	discount := decimal.Zero
	if c != nil {
		discount = subtotal.Mul(decimal.NewFromInt(int64(c.DiscountPercent))).Div(hundred)
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{
		Subtotal:       subtotal.Round(0),
		DiscountAmount: discount.Round(0),
		Total:          total.Round(0),
	}, nil
}
