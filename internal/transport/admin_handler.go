package transport

import (
	"net/http"

	"glamour-be/internal/order"
	"glamour-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	filter := order.ListFilter{
		Search: r.URL.Query().Get("search"),
	}
	if status := r.URL.Query().Get("status"); status != "" && status != "all" {
		filter.Status = order.Status(status)
	}

	orders, err := h.OrderSvc.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderViews(orders))
}

func (h *Handler) AdminGetOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	o, err := h.OrderSvc.GetOrderDetail(r.Context(), userID, chi.URLParam(r, "id"), true)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(o))
}

type updateOrderRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}

func (h *Handler) AdminUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var status *order.Status
	if req.Status != nil {
		s := order.Status(*req.Status)
		status = &s
	}
	var payStatus *order.PaymentStatus
	if req.PaymentStatus != nil {
		p := order.PaymentStatus(*req.PaymentStatus)
		payStatus = &p
	}

	if err := h.OrderSvc.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), status, payStatus); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

func (h *Handler) AdminConfirmPayment(w http.ResponseWriter, r *http.Request) {
	if err := h.OrderSvc.ConfirmPayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

func (h *Handler) AdminRejectPayment(w http.ResponseWriter, r *http.Request) {
	if err := h.OrderSvc.RejectPayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.OrderSvc.DashboardStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	productCount, err := h.CatalogSvc.ProductCount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders":   stats,
		"products": productCount,
	})
}
