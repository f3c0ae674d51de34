package api

import (
	"net/http"

	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/order"
	"github.com/ketabino/bookshop/internal/domain/user"
)

type checkoutRequest struct {
	Items          []cart.Item        `json:"items"`
	CouponCode     string             `json:"couponCode"`
	PaymentMethod  string             `json:"paymentMethod"`
	SavedAddressID string             `json:"savedAddressId"`
	Address        *order.AddressForm `json:"address"`
}

// checkout places an order. Online payments are persisted immediately;
// bank transfers come back in AWAITING_PAYMENT and wait for a receipt.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	serviceReq := order.CheckoutRequest{
		Items:      req.Items,
		CouponCode: req.CouponCode,
		Method:     order.PaymentMethod(req.PaymentMethod),
	}
	if req.Address != nil {
		serviceReq.Form = *req.Address
	}

	claims := h.optionalUser(r)
	if claims != nil {
		serviceReq.UserID = claims.UserID

		if req.SavedAddressID != "" {
			saved, err := h.savedAddress(r, claims.UserID, req.SavedAddressID)
			if err != nil {
				h.writeError(w, err)
				return
			}
			serviceReq.SavedAddress = saved
		}
	}

	o, err := h.orders.Checkout(r.Context(), serviceReq)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// The cart was converted into an order; drop the persisted copy.
	if claims != nil {
		if err := h.store.ClearCart(claims.UserID); err != nil {
			h.writeError(w, err)
			return
		}
	}
	h.writeJSON(w, http.StatusCreated, toOrderDTO(o))
}

func (h *Handler) savedAddress(r *http.Request, userID, addressID string) (*user.Address, error) {
	u, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	for i := range u.Addresses {
		if u.Addresses[i].ID == addressID {
			return &u.Addresses[i], nil
		}
	}
	return nil, user.ErrNotFound
}

type receiptRequest struct {
	ReceiptImage string `json:"receiptImage"`
}

// confirmTransfer attaches the uploaded receipt to a pending bank
// transfer, persisting the order in VERIFYING_PAYMENT.
func (h *Handler) confirmTransfer(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	o, err := h.orders.ConfirmTransfer(r.Context(), r.PathValue("id"), req.ReceiptImage)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderDTO(o))
}
