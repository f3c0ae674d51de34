package coupon

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock repository ---

type mockRepo struct {
	byCode  map[string]*Coupon
	lookups []string
	err     error
}

func (m *mockRepo) List(context.Context) ([]Coupon, error) { return nil, nil }

func (m *mockRepo) FindByCode(_ context.Context, code string) (*Coupon, error) {
	m.lookups = append(m.lookups, code)
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.byCode[code]
	if !ok {
		return nil, ErrInvalidCoupon
	}
	return c, nil
}

func (m *mockRepo) Upsert(context.Context, *Coupon) error { return nil }
func (m *mockRepo) Delete(context.Context, string) error  { return nil }

func newRepo(coupons ...Coupon) *mockRepo {
	byCode := make(map[string]*Coupon, len(coupons))
	for i := range coupons {
		byCode[coupons[i].Code] = &coupons[i]
	}
	return &mockRepo{byCode: byCode}
}

// --- Tests ---

func TestNormalize(t *testing.T) {
	assert.Equal(t, "WELCOME10", Normalize("  welcome10 "))
	assert.Equal(t, "", Normalize("   "))
}

func TestValidate_EmptyCode(t *testing.T) {
	v := NewRepoValidator(newRepo())

	_, err := v.Validate(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyCode)
}

func TestValidate_UnknownCode(t *testing.T) {
	v := NewRepoValidator(newRepo())

	_, err := v.Validate(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestValidate_NormalizesBeforeLookup(t *testing.T) {
	repo := newRepo(Coupon{Code: "WELCOME10", DiscountPercent: 10, Active: true})
	v := NewRepoValidator(repo)

	c, err := v.Validate(context.Background(), "  welcome10 ")
	require.NoError(t, err)

	assert.Equal(t, "WELCOME10", c.Code)
	assert.Equal(t, []string{"WELCOME10"}, repo.lookups)
}

func TestValidate_InactiveLooksLikeUnknown(t *testing.T) {
	v := NewRepoValidator(newRepo(Coupon{Code: "OLDPROMO", DiscountPercent: 30, Active: false}))

	_, err := v.Validate(context.Background(), "OLDPROMO")
	require.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestValidate_RepoErrorWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	v := NewRepoValidator(&mockRepo{err: boom})

	_, err := v.Validate(context.Background(), "WELCOME10")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrInvalidCoupon)
}

func TestFind_ActiveMatch(t *testing.T) {
	coupons := []Coupon{
		{Code: "WELCOME10", DiscountPercent: 10, Active: true},
		{Code: "OLDPROMO", DiscountPercent: 30, Active: false},
	}

	c, err := Find("welcome10", coupons)
	require.NoError(t, err)
	assert.Equal(t, 10, c.DiscountPercent)

	_, err = Find("oldpromo", coupons)
	require.ErrorIs(t, err, ErrInvalidCoupon)

	_, err = Find("", coupons)
	require.ErrorIs(t, err, ErrEmptyCode)
}

func TestFind_ReturnsCopy(t *testing.T) {
	coupons := []Coupon{{Code: "WELCOME10", DiscountPercent: 10, Active: true}}

	c, err := Find("WELCOME10", coupons)
	require.NoError(t, err)

	c.DiscountPercent = 99
	assert.Equal(t, 10, coupons[0].DiscountPercent)
}
