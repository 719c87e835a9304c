package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"glamour-be/internal/catalog"
	"glamour-be/internal/checkout"
	"glamour-be/internal/order"
	"glamour-be/internal/storage"
	"glamour-be/internal/user"
	"glamour-be/internal/utils"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError maps domain errors onto HTTP status codes. Provider and
// validation messages are surfaced verbatim; nothing is swallowed into
// a success shape.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrNotAuthenticated):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, order.ErrUnauthorized):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, user.ErrUserNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, user.ErrEmailExists):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, checkout.ErrShippingIncomplete),
		errors.Is(err, checkout.ErrUnknownLocation),
		errors.Is(err, checkout.ErrInvalidCoupon),
		errors.Is(err, checkout.ErrReceiptRequired),
		errors.Is(err, checkout.ErrUnknownMethod),
		errors.Is(err, checkout.ErrCartEmpty),
		errors.Is(err, storage.ErrReceiptTooLarge),
		errors.Is(err, storage.ErrUnsupportedReceiptType),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidPaymentStatus):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		utils.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}
