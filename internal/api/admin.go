package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ketabino/bookshop/internal/domain/book"
	"github.com/ketabino/bookshop/internal/domain/coupon"
	"github.com/ketabino/bookshop/internal/domain/order"
	"github.com/ketabino/bookshop/internal/domain/payment"
)

func (h *Handler) adminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderDTOs(orders))
}

func (h *Handler) approveOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderDTO(o))
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) rejectOrder(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	o, err := h.orders.Reject(r.Context(), r.PathValue("id"), req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderDTO(o))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), r.PathValue("id"), order.Status(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderDTO(o))
}

func (h *Handler) upsertBook(w http.ResponseWriter, r *http.Request) {
	var req bookDTO
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}
	if req.Title == "" || req.Slug == "" {
		h.writeErrorMessage(w, http.StatusBadRequest, "title and slug are required")
		return
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		h.writeErrorMessage(w, http.StatusBadRequest, "discountPercent must be between 0 and 100")
		return
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	b := req.toDomain()
	if err := h.store.UpsertBook(r.Context(), &b); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toBookDTO(&b))
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteBook(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) upsertCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryDTO
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}
	if req.Name == "" || req.Slug == "" {
		h.writeErrorMessage(w, http.StatusBadRequest, "name and slug are required")
		return
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	c := book.Category{ID: req.ID, Name: req.Name, Icon: req.Icon, Slug: req.Slug}
	if err := h.store.UpsertCategory(r.Context(), &c); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCategoryDTO(c))
}

func (h *Handler) listCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.store.ListCoupons(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]couponDTO, len(coupons))
	for i := range coupons {
		out[i] = *toCouponDTO(&coupons[i])
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) upsertCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponDTO
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}
	if coupon.Normalize(req.Code) == "" {
		h.writeError(w, coupon.ErrEmptyCode)
		return
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		h.writeErrorMessage(w, http.StatusBadRequest, "discountPercent must be between 0 and 100")
		return
	}

	c := coupon.Coupon{Code: req.Code, DiscountPercent: req.DiscountPercent, Active: req.Active}
	if err := h.store.UpsertCoupon(r.Context(), &c); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCouponDTO(&c))
}

func (h *Handler) deleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCoupon(r.Context(), r.PathValue("code")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]userDTO, len(users))
	for i := range users {
		out[i] = toUserDTO(&users[i])
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())
	id := r.PathValue("id")
	if id == claims.UserID {
		h.writeErrorMessage(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) savePaymentSettings(w http.ResponseWriter, r *http.Request) {
	var req payment.Settings
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	if err := h.store.SaveSettings(r.Context(), &req); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, req)
}

// syncStatus reports remote sync queue health. Requests never fail on
// remote errors, so this endpoint is where backlog becomes visible.
func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.SyncStatus())
}
