package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketabino/bookshop/internal/domain/coupon"
)

const (
	listCouponsSQL = `SELECT code, discount_percent, active FROM coupons ORDER BY code`

	getCouponByCodeSQL = `SELECT code, discount_percent, active
		FROM coupons WHERE code = UPPER($1)`

	upsertCouponSQL = `INSERT INTO coupons (code, discount_percent, active)
		VALUES (UPPER($1), $2, $3)
		ON CONFLICT (code) DO UPDATE SET
			discount_percent = EXCLUDED.discount_percent, active = EXCLUDED.active`

	deleteCouponSQL = `DELETE FROM coupons WHERE code = UPPER($1)`
)

var _ coupon.Repository = (*CouponRepository)(nil)

// CouponRepository implements coupon.Repository backed by PostgreSQL.
// Codes are stored upper-cased; lookups normalize the parameter in SQL so
// the on-disk form is the single source of truth.
type CouponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository returns a CouponRepository that uses the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// List returns all coupons, active or not, for the admin back-office.
func (r *CouponRepository) List(ctx context.Context) ([]coupon.Coupon, error) {
	rows, err := r.pool.Query(ctx, listCouponsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing coupons: %w", err)
	}

	coupons, err := pgx.CollectRows(rows, scanCoupon)
	if err != nil {
		return nil, fmt.Errorf("listing coupons: %w", err)
	}
	return coupons, nil
}

// FindByCode looks up a coupon by code. Returns coupon.ErrInvalidCoupon
// when no such code exists; activity is checked by the validator so that
// an inactive coupon stays indistinguishable from a missing one.
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	rows, err := r.pool.Query(ctx, getCouponByCodeSQL, code)
	if err != nil {
		return nil, fmt.Errorf("finding coupon by code %q: %w", code, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCoupon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, coupon.ErrInvalidCoupon
		}
		return nil, fmt.Errorf("finding coupon by code %q: %w", code, err)
	}
	return &c, nil
}

// Upsert inserts or replaces a coupon, normalizing the code upper-case.
func (r *CouponRepository) Upsert(ctx context.Context, c *coupon.Coupon) error {
	_, err := r.pool.Exec(ctx, upsertCouponSQL, c.Code, c.DiscountPercent, c.Active)
	if err != nil {
		return fmt.Errorf("upserting coupon %q: %w", c.Code, err)
	}
	return nil
}

// Delete removes a coupon by code.
func (r *CouponRepository) Delete(ctx context.Context, code string) error {
	_, err := r.pool.Exec(ctx, deleteCouponSQL, code)
	if err != nil {
		return fmt.Errorf("deleting coupon %q: %w", code, err)
	}
	return nil
}

func scanCoupon(row pgx.CollectableRow) (coupon.Coupon, error) {
	var c coupon.Coupon
	err := row.Scan(&c.Code, &c.DiscountPercent, &c.Active)
	return c, err
}
