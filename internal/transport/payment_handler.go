package transport

import (
	"net/http"

	"glamour-be/internal/utils"
)

type initializePaymentRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	CallbackURL string `json:"callbackUrl"`
}

// InitializePayment mirrors the original initialize-payment function:
// authenticated callers only, order id doubling as the gateway
// reference.
func (h *Handler) InitializePayment(w http.ResponseWriter, r *http.Request) {
	var req initializePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.OrderID == "" || req.Amount <= 0 {
		utils.WriteJSONError(w, "email, amount and orderId are required", http.StatusBadRequest)
		return
	}

	resp, err := h.Functions.InitializePayment(r.Context(), req.Email, req.Amount, req.OrderID, req.CallbackURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type verifyPaymentRequest struct {
	Reference string `json:"reference"`
}

// VerifyPayment mirrors the original verify-payment function: looks the
// transaction up with the gateway and settles the matching order
// through the privileged path.
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Reference == "" {
		utils.WriteJSONError(w, "missing reference", http.StatusBadRequest)
		return
	}

	result, err := h.Functions.VerifyPayment(r.Context(), req.Reference)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
