package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/ketabino/bookshop/internal/auth"
	"github.com/ketabino/bookshop/internal/domain/book"
	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/coupon"
	"github.com/ketabino/bookshop/internal/domain/order"
	"github.com/ketabino/bookshop/internal/domain/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.lg.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps domain errors to HTTP statuses. Unknown errors become
// opaque 500s; the detail goes to the log, not the client.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		missingField  *order.MissingAddressFieldError
		badTransition *order.InvalidTransitionError
	)

	switch {
	case errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, coupon.ErrEmptyCode),
		errors.Is(err, coupon.ErrInvalidCoupon),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrMissingReceipt),
		errors.Is(err, order.ErrReasonRequired),
		errors.Is(err, order.ErrInvalidStatus),
		errors.As(err, &missingField):
		h.writeErrorMessage(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		h.writeErrorMessage(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, book.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, order.ErrDraftNotFound),
		errors.Is(err, user.ErrNotFound):
		h.writeErrorMessage(w, http.StatusNotFound, err.Error())

	case errors.Is(err, user.ErrEmailTaken),
		errors.As(err, &badTransition):
		h.writeErrorMessage(w, http.StatusConflict, err.Error())

	default:
		h.lg.Error("request failed", zap.Error(err))
		h.writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}

// decode reads a JSON request body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode request")
	}
	return nil
}

func (h *Handler) badRequest(w http.ResponseWriter, err error) {
	h.writeErrorMessage(w, http.StatusBadRequest, err.Error())
}
