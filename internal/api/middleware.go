package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/ketabino/bookshop/internal/auth"
)

type contextKey struct{ name string }

var claimsKey = contextKey{"session-claims"}

// sessionClaims extracts the verified claims placed by requireUser.
func sessionClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// bearerToken pulls the token out of the Authorization header.
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// requireUser rejects requests without a valid session token and stores
// the claims on the request context.
func (h *Handler) requireUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.tokens.Verify(bearerToken(r))
		if err != nil {
			h.writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// requireAdmin additionally checks the per-account admin flag carried in
// the token claims.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.Handler {
	return h.requireUser(func(w http.ResponseWriter, r *http.Request) {
		if claims := sessionClaims(r.Context()); claims == nil || !claims.IsAdmin {
			h.writeErrorMessage(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	})
}

// optionalUser returns claims when a valid token is attached, nil
// otherwise. Checkout works for guests; a valid session associates the
// order with the account.
func (h *Handler) optionalUser(r *http.Request) *auth.Claims {
	token := bearerToken(r)
	if token == "" {
		return nil
	}
	claims, err := h.tokens.Verify(token)
	if err != nil {
		return nil
	}
	return claims
}
