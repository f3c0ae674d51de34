package api

import (
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/ketabino/bookshop/internal/auth"
	"github.com/ketabino/bookshop/internal/domain/user"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.writeErrorMessage(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	u := &user.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Mobile:       req.Mobile,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		h.writeError(w, err)
		return
	}

	h.issueSession(w, u, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	u, err := h.store.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Same response as a wrong password.
		h.writeError(w, auth.ErrInvalidCredentials)
		return
	}
	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		h.writeError(w, err)
		return
	}

	h.issueSession(w, u, http.StatusOK)
}

func (h *Handler) issueSession(w http.ResponseWriter, u *user.User, status int) {
	token, err := h.tokens.Issue(u.ID, u.IsAdmin)
	if err != nil {
		h.writeError(w, errors.Wrap(err, "issue session"))
		return
	}
	h.writeJSON(w, status, sessionResponse{Token: token, User: toUserDTO(u)})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())
	u, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserDTO(u))
}
