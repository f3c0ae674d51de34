// Package api exposes the storefront over HTTP. Handlers stay thin:
// they decode requests, call the domain services or the state store, and
// encode responses. All business rules live below this package.
package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ketabino/bookshop/internal/auth"
	"github.com/ketabino/bookshop/internal/domain/coupon"
	"github.com/ketabino/bookshop/internal/domain/order"
	"github.com/ketabino/bookshop/internal/realtime"
	"github.com/ketabino/bookshop/internal/store"
)

// Handler wires HTTP routes to the storefront services.
type Handler struct {
	store   *store.Store
	orders  *order.Service
	coupons coupon.Validator
	tokens  *auth.Tokens
	hub     *realtime.Hub
	lg      *zap.Logger
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(st *store.Store, orders *order.Service, coupons coupon.Validator, tokens *auth.Tokens, hub *realtime.Hub, lg *zap.Logger) *Handler {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Handler{
		store:   st,
		orders:  orders,
		coupons: coupons,
		tokens:  tokens,
		hub:     hub,
		lg:      lg,
	}
}

// Routes registers every endpoint on the mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	// Public storefront.
	mux.HandleFunc("GET /api/books", h.listBooks)
	mux.HandleFunc("GET /api/books/{slug}", h.getBook)
	mux.HandleFunc("GET /api/categories", h.listCategories)
	mux.HandleFunc("GET /api/payment-settings", h.getPaymentSettings)

	// Sessions.
	mux.HandleFunc("POST /api/auth/signup", h.signup)
	mux.HandleFunc("POST /api/auth/login", h.login)

	// Checkout. Guests may order, so these are public; an attached session
	// associates the order with the account.
	mux.HandleFunc("POST /api/checkout/quote", h.quote)
	mux.HandleFunc("POST /api/orders", h.checkout)
	mux.HandleFunc("POST /api/orders/{id}/receipt", h.confirmTransfer)

	// Account area.
	mux.Handle("GET /api/me", h.requireUser(h.me))
	mux.Handle("GET /api/me/orders", h.requireUser(h.myOrders))
	mux.Handle("GET /api/me/cart", h.requireUser(h.getCart))
	mux.Handle("PUT /api/me/cart", h.requireUser(h.putCart))
	mux.Handle("POST /api/me/favorites/{bookId}", h.requireUser(h.toggleFavorite))
	mux.Handle("POST /api/me/addresses", h.requireUser(h.addAddress))
	mux.Handle("DELETE /api/me/addresses/{id}", h.requireUser(h.deleteAddress))
	mux.Handle("POST /api/me/notifications/{id}/read", h.requireUser(h.readNotification))

	// Back office.
	mux.Handle("GET /api/admin/orders", h.requireAdmin(h.adminListOrders))
	mux.Handle("POST /api/admin/orders/{id}/approve", h.requireAdmin(h.approveOrder))
	mux.Handle("POST /api/admin/orders/{id}/reject", h.requireAdmin(h.rejectOrder))
	mux.Handle("PUT /api/admin/orders/{id}/status", h.requireAdmin(h.updateOrderStatus))
	mux.Handle("POST /api/admin/books", h.requireAdmin(h.upsertBook))
	mux.Handle("DELETE /api/admin/books/{id}", h.requireAdmin(h.deleteBook))
	mux.Handle("POST /api/admin/categories", h.requireAdmin(h.upsertCategory))
	mux.Handle("GET /api/admin/coupons", h.requireAdmin(h.listCoupons))
	mux.Handle("POST /api/admin/coupons", h.requireAdmin(h.upsertCoupon))
	mux.Handle("DELETE /api/admin/coupons/{code}", h.requireAdmin(h.deleteCoupon))
	mux.Handle("GET /api/admin/users", h.requireAdmin(h.adminListUsers))
	mux.Handle("DELETE /api/admin/users/{id}", h.requireAdmin(h.adminDeleteUser))
	mux.Handle("PUT /api/admin/payment-settings", h.requireAdmin(h.savePaymentSettings))
	mux.Handle("GET /api/admin/sync-status", h.requireAdmin(h.syncStatus))

	// Change subscriptions.
	if h.hub != nil {
		mux.Handle("GET /api/ws", h.hub)
	}
}
