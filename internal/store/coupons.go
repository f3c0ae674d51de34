package store

import (
	"context"

	"github.com/ketabino/bookshop/internal/domain/coupon"
)

// ListCoupons returns all coupons, active or not.
func (s *Store) ListCoupons(ctx context.Context) ([]coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]coupon.Coupon(nil), s.coupons...), nil
}

// FindCoupon looks up a coupon by normalized code. Activity is checked by
// the validator, keeping wrong and deactivated codes indistinguishable.
func (s *Store) FindCoupon(ctx context.Context, code string) (*coupon.Coupon, error) {
	normalized := coupon.Normalize(code)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.coupons {
		if s.coupons[i].Code == normalized {
			c := s.coupons[i]
			return &c, nil
		}
	}
	return nil, coupon.ErrInvalidCoupon
}

// UpsertCoupon adds or replaces a coupon, normalizing its code.
func (s *Store) UpsertCoupon(ctx context.Context, c *coupon.Coupon) error {
	record := *c
	record.Code = coupon.Normalize(record.Code)

	s.mu.Lock()
	replaced := false
	next := make([]coupon.Coupon, len(s.coupons))
	copy(next, s.coupons)
	for i := range next {
		if next[i].Code == record.Code {
			next[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, record)
	}
	s.coupons = next
	err := s.snapshot(keyCoupons, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.enqueueSync(keyCoupons, func(ctx context.Context) error {
		return s.remote.Coupons.Upsert(ctx, &record)
	})
	s.changed(keyCoupons)
	return nil
}

// DeleteCoupon removes a coupon by code.
func (s *Store) DeleteCoupon(ctx context.Context, code string) error {
	normalized := coupon.Normalize(code)

	s.mu.Lock()
	next := make([]coupon.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		if c.Code != normalized {
			next = append(next, c)
		}
	}
	s.coupons = next
	err := s.snapshot(keyCoupons, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.enqueueSync(keyCoupons, func(ctx context.Context) error {
		return s.remote.Coupons.Delete(ctx, normalized)
	})
	s.changed(keyCoupons)
	return nil
}

// couponView adapts the store to coupon.Repository.
type couponView struct{ s *Store }

func (v couponView) List(ctx context.Context) ([]coupon.Coupon, error) { return v.s.ListCoupons(ctx) }
func (v couponView) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return v.s.FindCoupon(ctx, code)
}
func (v couponView) Upsert(ctx context.Context, c *coupon.Coupon) error {
	return v.s.UpsertCoupon(ctx, c)
}
func (v couponView) Delete(ctx context.Context, code string) error { return v.s.DeleteCoupon(ctx, code) }

// CouponStore exposes the store as a coupon.Repository.
func (s *Store) CouponStore() coupon.Repository { return couponView{s} }
