package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ketabino/bookshop/internal/domain/cart"
)

// GuestUserID marks orders placed without an authenticated user.
const GuestUserID = "guest"

// PaymentMethod selects the checkout payment branch.
type PaymentMethod string

const (
	// PaymentOnline simulates an immediately successful gateway payment.
	PaymentOnline PaymentMethod = "online"
	// PaymentCardToCard is a manual bank transfer that requires an uploaded
	// receipt before the order is persisted.
	PaymentCardToCard PaymentMethod = "card_to_card"
)

// Valid reports whether the payment method is one of the supported branches.
func (m PaymentMethod) Valid() bool {
	return m == PaymentOnline || m == PaymentCardToCard
}

// ShippingAddress is the flattened delivery address stored on an order.
type ShippingAddress struct {
	FullName string `json:"fullName"`
	Mobile   string `json:"mobile"`
	Address  string `json:"address"`
}

// Order is a placed order. Items and TotalAmount are immutable once the
// order exists; only Status, AdminNote, and ReceiptImage (while a transfer
// is pending) may change, and only through the admin transitions or the
// payment branch.
type Order struct {
	ID              string
	UserID          string
	Items           []cart.Item
	TotalAmount     decimal.Decimal
	Status          Status
	CreatedAt       time.Time
	PaymentMethod   PaymentMethod
	ReceiptImage    string
	AdminNote       string
	ShippingAddress ShippingAddress
}

// Repository defines persistence operations for orders. List results are
// most-recent-first.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	Update(ctx context.Context, o *Order) error
}
