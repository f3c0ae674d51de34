package api

import (
	"net/http"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.ListBooks(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]bookDTO, len(books))
	for i := range books {
		out[i] = toBookDTO(&books[i])
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.GetBookBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toBookDTO(b))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]categoryDTO, len(categories))
	for i, c := range categories {
		out[i] = toCategoryDTO(c)
	}
	h.writeJSON(w, http.StatusOK, out)
}

// getPaymentSettings is public: the checkout page shows the destination
// card for bank transfers.
func (h *Handler) getPaymentSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetSettings(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, settings)
}
