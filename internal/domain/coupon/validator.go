package coupon

import (
	"context"

	"github.com/go-faster/errors"
)

// Validator resolves a user-entered code to an applicable coupon.
// Applying a second code replaces the first; stacking is the caller's
// responsibility to avoid by keeping at most one applied coupon.
type Validator interface {
	Validate(ctx context.Context, code string) (*Coupon, error)
}

// Find matches a normalized code against the full known-coupon collection.
// Only active coupons match; misses and inactive coupons both yield
// ErrInvalidCoupon.
func Find(code string, coupons []Coupon) (*Coupon, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return nil, ErrEmptyCode
	}
	for i := range coupons {
		if coupons[i].Code == normalized && coupons[i].Active {
			c := coupons[i]
			return &c, nil
		}
	}
	return nil, ErrInvalidCoupon
}

// RepoValidator implements Validator against a coupon Repository.
type RepoValidator struct {
	repo Repository
}

// NewRepoValidator creates a RepoValidator backed by the given Repository.
func NewRepoValidator(repo Repository) *RepoValidator {
	return &RepoValidator{repo: repo}
}

// Validate normalizes the code and looks it up among active coupons.
func (v *RepoValidator) Validate(ctx context.Context, code string) (*Coupon, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return nil, ErrEmptyCode
	}

	c, err := v.repo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrInvalidCoupon) {
			return nil, ErrInvalidCoupon
		}
		return nil, errors.Wrap(err, "lookup coupon")
	}
	if !c.Active {
		return nil, ErrInvalidCoupon
	}
	return c, nil
}
