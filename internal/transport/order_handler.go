package transport

import (
	"net/http"

	"glamour-be/internal/order"
	"glamour-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// orderView decorates an order with the display fields the order pages
// and the admin table render directly.
type orderView struct {
	*order.Order
	TotalDisplay string `json:"total_display"`
	Reference    string `json:"reference"`
}

func newOrderView(o *order.Order) orderView {
	return orderView{
		Order:        o,
		TotalDisplay: utils.FormatNaira(o.Total),
		Reference:    utils.PtrString(o.PaymentReference),
	}
}

func newOrderViews(orders []*order.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.OrderSvc.GetOrdersForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderViews(orders))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	isAdmin := utils.IsAdminFromContext(r.Context())

	o, err := h.OrderSvc.GetOrderDetail(r.Context(), userID, chi.URLParam(r, "id"), isAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(o))
}
