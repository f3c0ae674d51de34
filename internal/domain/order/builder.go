package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/user"
)

// MissingAddressFieldError indicates a required new-address field was blank.
type MissingAddressFieldError struct {
	Field string
}

func (e *MissingAddressFieldError) Error() string {
	return fmt.Sprintf("shipping address field %s is required", e.Field)
}

// AddressForm carries a freshly entered shipping address from the checkout
// form. Full name, mobile, and address text are all required.
type AddressForm struct {
	FullName string
	Mobile   string
	Address  string
}

// ResolveAddress produces the order's flat shipping address. A saved
// address was validated at creation time and is always accepted; its city
// and free-text parts are composed into one line. A new address is
// validated field by field.
func ResolveAddress(saved *user.Address, form AddressForm) (ShippingAddress, error) {
	if saved != nil {
		return ShippingAddress{
			FullName: saved.FullName,
			Mobile:   saved.Mobile,
			Address:  saved.City + ", " + saved.FullAddress,
		}, nil
	}

	for _, f := range []struct{ name, value string }{
		{"fullName", form.FullName},
		{"mobile", form.Mobile},
		{"address", form.Address},
	} {
		if strings.TrimSpace(f.value) == "" {
			return ShippingAddress{}, &MissingAddressFieldError{Field: f.name}
		}
	}

	return ShippingAddress{
		FullName: form.FullName,
		Mobile:   form.Mobile,
		Address:  form.Address,
	}, nil
}

// build constructs an immutable order from a cart snapshot. Items are
// deep-copied so later cart mutations cannot reach into the placed order.
func build(id, userID string, items []cart.Item, total decimal.Decimal, method PaymentMethod, addr ShippingAddress, createdAt time.Time) *Order {
	snapshot := make([]cart.Item, len(items))
	copy(snapshot, items)

	if userID == "" {
		userID = GuestUserID
	}

	return &Order{
		ID:              id,
		UserID:          userID,
		Items:           snapshot,
		TotalAmount:     total,
		Status:          initialStatus(method),
		CreatedAt:       createdAt,
		PaymentMethod:   method,
		ShippingAddress: addr,
	}
}
