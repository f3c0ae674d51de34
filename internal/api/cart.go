package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/coupon"
)

type quoteRequest struct {
	Items      []cart.Item `json:"items"`
	CouponCode string      `json:"couponCode"`
}

type quoteResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
	CouponApplied  *couponDTO      `json:"couponApplied,omitempty"`
}

type couponDTO struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
	Active          bool   `json:"active"`
}

func toCouponDTO(c *coupon.Coupon) *couponDTO {
	return &couponDTO{Code: c.Code, DiscountPercent: c.DiscountPercent, Active: c.Active}
}

// quote prices a cart without placing an order. The same calculation runs
// again at checkout; this endpoint only feeds the order summary view.
func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	var applied *coupon.Coupon
	if req.CouponCode != "" {
		c, err := h.coupons.Validate(r.Context(), req.CouponCode)
		if err != nil {
			h.writeError(w, err)
			return
		}
		applied = c
	}

	q, err := cart.NewQuote(req.Items, applied)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := quoteResponse{
		Subtotal:       q.Subtotal,
		DiscountAmount: q.DiscountAmount,
		Total:          q.Total,
		TotalFormatted: cart.FormatPrice(q.Total),
	}
	if applied != nil {
		resp.CouponApplied = toCouponDTO(applied)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type cartResponse struct {
	Items []cart.Item `json:"items"`
}

// getCart returns the persisted cart for the signed-in user.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())
	items := h.store.Cart(claims.UserID)
	if items == nil {
		items = []cart.Item{}
	}
	h.writeJSON(w, http.StatusOK, cartResponse{Items: items})
}

// putCart replaces the persisted cart wholesale. The client owns cart
// editing; the server only keeps it for continuity across devices.
func (h *Handler) putCart(w http.ResponseWriter, r *http.Request) {
	var req cartResponse
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	claims := sessionClaims(r.Context())
	if err := h.store.SaveCart(claims.UserID, req.Items); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}
