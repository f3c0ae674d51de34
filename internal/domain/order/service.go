package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/coupon"
	"github.com/ketabino/bookshop/internal/domain/user"
)

// Sentinel errors for checkout and admin transitions.
var (
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrMissingReceipt       = errors.New("receipt image is required")
	ErrDraftNotFound        = errors.New("no pending transfer order")
	ErrReasonRequired       = errors.New("rejection reason is required")
	ErrNotFound             = errors.New("order not found")
	ErrInvalidStatus        = errors.New("unknown order status")
)

// InvalidTransitionError indicates a status change the lifecycle forbids.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// Notifier is the side-effect hook invoked on order status changes. It
// appends an unread notification to the target user and persists it.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message, typ string) error
}

// CheckoutRequest holds everything submitted from the checkout form.
type CheckoutRequest struct {
	UserID       string
	Items        []cart.Item
	CouponCode   string
	Method       PaymentMethod
	SavedAddress *user.Address
	Form         AddressForm
}

// Service implements order placement, the payment branch, and the
// admin-driven lifecycle. Bank-transfer orders are held as in-memory
// drafts until a receipt is confirmed; everything else goes straight to
// the repository.
type Service struct {
	coupons  coupon.Validator
	orders   Repository
	notifier Notifier

	mu     sync.Mutex
	drafts map[string]*Order

	now   func() time.Time
	newID func() string
}

// NewService creates an order Service with the required dependencies.
func NewService(coupons coupon.Validator, orders Repository, notifier Notifier) *Service {
	return &Service{
		coupons:  coupons,
		orders:   orders,
		notifier: notifier,
		drafts:   make(map[string]*Order),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Checkout prices the cart, resolves the shipping address, and runs the
// payment branch. Online orders are persisted immediately in PROCESSING.
// Bank-transfer orders are returned in AWAITING_PAYMENT but held as drafts;
// nothing is persisted until ConfirmTransfer.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, cart.ErrEmptyCart
	}
	if !req.Method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	var applied *coupon.Coupon
	if req.CouponCode != "" {
		c, err := s.coupons.Validate(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		applied = c
	}

	quote, err := cart.NewQuote(req.Items, applied)
	if err != nil {
		return nil, err
	}

	addr, err := ResolveAddress(req.SavedAddress, req.Form)
	if err != nil {
		return nil, err
	}

	o := build(s.newID(), req.UserID, req.Items, quote.Total, req.Method, addr, s.now())

	if req.Method == PaymentCardToCard {
		s.mu.Lock()
		s.drafts[o.ID] = o
		s.mu.Unlock()
		return o, nil
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return o, nil
}

// ConfirmTransfer attaches the uploaded receipt to a pending transfer
// draft, moves it to VERIFYING_PAYMENT, and persists it. An empty receipt
// is rejected without mutating the draft.
func (s *Service) ConfirmTransfer(ctx context.Context, orderID, receiptImage string) (*Order, error) {
	if receiptImage == "" {
		return nil, ErrMissingReceipt
	}

	// Claim the draft atomically so concurrent confirmations of the same
	// order persist it exactly once.
	s.mu.Lock()
	draft, ok := s.drafts[orderID]
	if ok {
		delete(s.drafts, orderID)
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrDraftNotFound
	}

	o := *draft
	o.ReceiptImage = receiptImage
	o.Status = StatusVerifyingPayment

	if err := s.orders.Create(ctx, &o); err != nil {
		// Put the draft back so the upload can be retried.
		s.mu.Lock()
		s.drafts[orderID] = draft
		s.mu.Unlock()
		return nil, errors.Wrap(err, "create order")
	}

	return &o, nil
}

// Approve accepts the receipt of a VERIFYING_PAYMENT order, moving it to
// PROCESSING with an approval note and a success notification.
func (s *Service) Approve(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusVerifyingPayment {
		return nil, &InvalidTransitionError{From: o.Status, To: StatusProcessing}
	}

	o.Status = StatusProcessing
	o.AdminNote = "Receipt approved."
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrap(err, "update order")
	}

	s.notify(ctx, o,
		"Bank payment approved",
		fmt.Sprintf("The payment receipt for order #%s was approved and your order is now being processed.", shortID(o.ID)),
		"success",
	)
	return o, nil
}

// Reject refuses the receipt of a VERIFYING_PAYMENT order. The reason is
// mandatory and becomes the admin note; the owner gets an error
// notification.
func (s *Service) Reject(ctx context.Context, orderID, reason string) (*Order, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusVerifyingPayment {
		return nil, &InvalidTransitionError{From: o.Status, To: StatusRejected}
	}

	o.Status = StatusRejected
	o.AdminNote = reason
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrap(err, "update order")
	}

	s.notify(ctx, o,
		"Bank payment rejected",
		fmt.Sprintf("The payment receipt for order #%s was rejected. Reason: %s. Please review and try again.", shortID(o.ID), reason),
		"error",
	)
	return o, nil
}

// UpdateStatus is the free-form admin status control. Terminal orders
// accept no further edits; every successful change emits exactly one
// notification to the owning user.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, next Status) (*Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.Terminal() {
		return nil, &InvalidTransitionError{From: o.Status, To: next}
	}

	o.Status = next
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrap(err, "update order")
	}

	title, message, typ := statusNotification(o.ID, next)
	s.notify(ctx, o, title, message, typ)
	return o, nil
}

// notify delivers a status notification to the order owner. Guest orders
// have no owner record, so delivery is skipped. Notification failures are
// deliberately not propagated: the status change already happened.
func (s *Service) notify(ctx context.Context, o *Order, title, message, typ string) {
	if o.UserID == GuestUserID || s.notifier == nil {
		return
	}
	_ = s.notifier.Notify(ctx, o.UserID, title, message, typ)
}

// statusNotification maps a status change to the user-facing message.
func statusNotification(orderID string, next Status) (title, message, typ string) {
	switch next {
	case StatusDelivered:
		return "Order delivered",
			"Your order was delivered successfully. Thank you for shopping with us, enjoy your books!",
			"success"
	case StatusShipped:
		return "Order shipped",
			"Your order was handed to the courier and will reach you soon.",
			"success"
	default:
		return "Order status updated",
			fmt.Sprintf("The status of order #%s changed to %q.", shortID(orderID), string(next)),
			"info"
	}
}

// shortID returns the first 8 characters of an order ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
