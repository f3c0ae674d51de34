package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketabino/bookshop/internal/domain/user"
)

func TestResolveAddress_SavedAlwaysAccepted(t *testing.T) {
	saved := &user.Address{
		FullName:    "Sara Tehrani",
		Mobile:      "09120000000",
		City:        "Tehran",
		FullAddress: "12 Enqelab St",
	}

	addr, err := ResolveAddress(saved, AddressForm{})
	require.NoError(t, err)

	assert.Equal(t, "Sara Tehrani", addr.FullName)
	assert.Equal(t, "09120000000", addr.Mobile)
	assert.Equal(t, "Tehran, 12 Enqelab St", addr.Address)
}

func TestResolveAddress_FormValidated(t *testing.T) {
	tests := []struct {
		name      string
		form      AddressForm
		wantField string
	}{
		{"missing full name", AddressForm{Mobile: "0912", Address: "x"}, "fullName"},
		{"missing mobile", AddressForm{FullName: "Sara", Address: "x"}, "mobile"},
		{"missing address", AddressForm{FullName: "Sara", Mobile: "0912"}, "address"},
		{"whitespace only", AddressForm{FullName: "  ", Mobile: "0912", Address: "x"}, "fullName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveAddress(nil, tt.form)

			var missing *MissingAddressFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantField, missing.Field)
		})
	}
}

func TestResolveAddress_ValidForm(t *testing.T) {
	addr, err := ResolveAddress(nil, AddressForm{
		FullName: "Sara Tehrani",
		Mobile:   "09120000000",
		Address:  "12 Enqelab St",
	})
	require.NoError(t, err)
	assert.Equal(t, "12 Enqelab St", addr.Address)
}

func TestStatus_Terminal(t *testing.T) {
	terminal := []Status{StatusDelivered, StatusCancelled, StatusRejected}
	for _, s := range terminal {
		assert.True(t, s.Terminal(), "%s", s)
	}

	open := []Status{StatusPending, StatusAwaitingPayment, StatusVerifyingPayment, StatusProcessing, StatusShipped}
	for _, s := range open {
		assert.False(t, s.Terminal(), "%s", s)
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusShipped.Valid())
	assert.False(t, Status("LOST_IN_MAIL").Valid())
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusProcessing, initialStatus(PaymentOnline))
	assert.Equal(t, StatusAwaitingPayment, initialStatus(PaymentCardToCard))
}
