package transport

import (
	"net/http"

	"glamour-be/internal/cart"
	"glamour-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type cartResponse struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice int64       `json:"totalPrice"`
	IsOpen     bool        `json:"isOpen"`
}

func (h *Handler) cartView(s *cart.Store) cartResponse {
	return cartResponse{
		Items:      s.Items(),
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
		IsOpen:     s.IsOpen(),
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.Carts.StoreFor(sessionOwner(w, r))
	writeJSON(w, http.StatusOK, h.cartView(store))
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var params cart.NewItemParams
	if err := decodeJSON(r, &params); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if params.ProductID == "" || params.Variant.ID == "" {
		utils.WriteJSONError(w, "productId and variant are required", http.StatusBadRequest)
		return
	}
	if params.Quantity <= 0 {
		params.Quantity = 1
	}

	store := h.Carts.StoreFor(sessionOwner(w, r))
	store.AddItem(params)
	writeJSON(w, http.StatusOK, h.cartView(store))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	store := h.Carts.StoreFor(sessionOwner(w, r))
	store.UpdateQuantity(chi.URLParam(r, "id"), req.Quantity)
	writeJSON(w, http.StatusOK, h.cartView(store))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	store := h.Carts.StoreFor(sessionOwner(w, r))
	store.RemoveItem(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.cartView(store))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.Carts.StoreFor(sessionOwner(w, r))
	store.ClearCart()
	writeJSON(w, http.StatusOK, h.cartView(store))
}

type drawerRequest struct {
	// "open", "close" or "toggle"
	Action string `json:"action"`
}

func (h *Handler) SetCartDrawer(w http.ResponseWriter, r *http.Request) {
	var req drawerRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	store := h.Carts.StoreFor(sessionOwner(w, r))
	switch req.Action {
	case "open":
		store.OpenCart()
	case "close":
		store.CloseCart()
	case "toggle":
		store.ToggleCart()
	default:
		utils.WriteJSONError(w, "unknown drawer action", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.cartView(store))
}
