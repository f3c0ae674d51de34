package coupon

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
)

var (
	// ErrEmptyCode is returned when the entered code is blank after trimming.
	ErrEmptyCode = errors.New("coupon code is empty")
	// ErrInvalidCoupon is returned when no active coupon matches the code.
	// A wrong code and a deactivated code are deliberately indistinguishable.
	ErrInvalidCoupon = errors.New("invalid coupon code")
)

// Coupon is a named percentage discount applicable once per order.
// Codes are stored upper-cased; Normalize keeps lookups consistent with
// that convention.
type Coupon struct {
	Code            string
	DiscountPercent int
	Active          bool
}

// Normalize trims surrounding whitespace and upper-cases a user-entered
// code so it matches the stored form.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Repository provides lookup and admin mutation of coupons.
type Repository interface {
	List(ctx context.Context) ([]Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	Upsert(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, code string) error
}
