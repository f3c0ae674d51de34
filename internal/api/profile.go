package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ketabino/bookshop/internal/domain/user"
)

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())
	orders, err := h.store.ListOrdersByUser(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderDTOs(orders))
}

// toggleFavorite adds or removes one book from the favorites list.
func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())
	u, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	u.Favorites = user.ToggleFavorite(u.Favorites, r.PathValue("bookId"))
	if err := h.store.UpdateUser(r.Context(), u); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserDTO(u))
}

type addressRequest struct {
	Title       string `json:"title"`
	FullName    string `json:"fullName"`
	Mobile      string `json:"mobile"`
	City        string `json:"city"`
	FullAddress string `json:"fullAddress"`
}

func (h *Handler) addAddress(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}
	if req.FullName == "" || req.Mobile == "" || req.City == "" || req.FullAddress == "" {
		h.writeErrorMessage(w, http.StatusBadRequest, "fullName, mobile, city, and fullAddress are required")
		return
	}

	claims := sessionClaims(r.Context())
	u, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	u.Addresses = append(append([]user.Address(nil), u.Addresses...), user.Address{
		ID:          uuid.New().String(),
		Title:       req.Title,
		FullName:    req.FullName,
		Mobile:      req.Mobile,
		City:        req.City,
		FullAddress: req.FullAddress,
	})
	if err := h.store.UpdateUser(r.Context(), u); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toUserDTO(u))
}

func (h *Handler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())
	u, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	id := r.PathValue("id")
	next := make([]user.Address, 0, len(u.Addresses))
	for _, a := range u.Addresses {
		if a.ID != id {
			next = append(next, a)
		}
	}
	u.Addresses = next

	if err := h.store.UpdateUser(r.Context(), u); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserDTO(u))
}

// readNotification flips the read flag on one notification.
func (h *Handler) readNotification(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())
	u, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	u.Notifications = user.MarkNotificationRead(u.Notifications, r.PathValue("id"))
	if err := h.store.UpdateUser(r.Context(), u); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserDTO(u))
}
