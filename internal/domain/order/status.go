package order

// Status enumerates the order lifecycle states.
type Status string

const (
	// StatusPending is the legacy initial state, superseded by the two
	// payment branches but still accepted when reading old records.
	StatusPending Status = "PENDING"
	// StatusAwaitingPayment holds a bank-transfer order until the customer
	// uploads a receipt. Orders in this state are drafts, never persisted.
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	// StatusVerifyingPayment means a receipt was uploaded and awaits admin
	// review.
	StatusVerifyingPayment Status = "VERIFYING_PAYMENT"
	// StatusProcessing means payment is settled and the order is being
	// prepared.
	StatusProcessing Status = "PROCESSING"
	// StatusShipped means the order was handed to the courier.
	StatusShipped Status = "SHIPPED"
	// StatusDelivered is the successful terminal state.
	StatusDelivered Status = "DELIVERED"
	// StatusCancelled is the manual admin override, reachable any time
	// before delivery.
	StatusCancelled Status = "CANCELLED"
	// StatusRejected is the terminal state for refused transfer receipts.
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusVerifyingPayment,
		StatusProcessing, StatusShipped, StatusDelivered,
		StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s Status) Terminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// initialStatus returns the state an order starts in for the given payment
// branch: online payments are treated as settled immediately, transfers
// wait for a receipt.
func initialStatus(m PaymentMethod) Status {
	if m == PaymentCardToCard {
		return StatusAwaitingPayment
	}
	return StatusProcessing
}
