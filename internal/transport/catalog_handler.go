package transport

import (
	"net/http"

	"glamour-be/internal/checkout"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.CatalogSvc.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.CatalogSvc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CatalogSvc.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) ListDeliveryLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, checkout.DeliveryLocations())
}
