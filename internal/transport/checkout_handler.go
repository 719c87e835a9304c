package transport

import (
	"net/http"

	"glamour-be/internal/checkout"
	"glamour-be/internal/order"
	"glamour-be/internal/storage"
	"glamour-be/internal/utils"
)

type checkoutView struct {
	Session *checkout.Session `json:"session"`
	Quote   checkout.Quote    `json:"quote"`
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	owner := sessionOwner(w, r)
	writeJSON(w, http.StatusOK, checkoutView{
		Session: h.CheckoutSvc.GetSession(r.Context(), owner),
		Quote:   h.CheckoutSvc.GetQuote(r.Context(), owner),
	})
}

func (h *Handler) SetShipping(w http.ResponseWriter, r *http.Request) {
	var info checkout.ShippingInfo
	if err := decodeJSON(r, &info); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	owner := sessionOwner(w, r)
	sess := h.CheckoutSvc.SetShipping(r.Context(), owner, info)
	writeJSON(w, http.StatusOK, checkoutView{
		Session: sess,
		Quote:   h.CheckoutSvc.GetQuote(r.Context(), owner),
	})
}

type paymentMethodRequest struct {
	Method string `json:"method"`
}

func (h *Handler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := h.CheckoutSvc.SelectPaymentMethod(r.Context(), sessionOwner(w, r), order.PaymentMethod(req.Method))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) NextStep(w http.ResponseWriter, r *http.Request) {
	sess, err := h.CheckoutSvc.NextStep(r.Context(), sessionOwner(w, r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) PrevStep(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.CheckoutSvc.PrevStep(r.Context(), sessionOwner(w, r)))
}

type couponRequest struct {
	Code string `json:"code"`
}

func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	owner := sessionOwner(w, r)
	sess, err := h.CheckoutSvc.ApplyCoupon(r.Context(), owner, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutView{
		Session: sess,
		Quote:   h.CheckoutSvc.GetQuote(r.Context(), owner),
	})
}

func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	owner := sessionOwner(w, r)
	sess := h.CheckoutSvc.RemoveCoupon(r.Context(), owner)
	writeJSON(w, http.StatusOK, checkoutView{
		Session: sess,
		Quote:   h.CheckoutSvc.GetQuote(r.Context(), owner),
	})
}

// SubmitCheckout accepts multipart form data so the bank-transfer path
// can carry its receipt file; the gateway path posts an empty form.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	params := checkout.SubmitParams{}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/json" {
		if err := r.ParseMultipartForm(storage.MaxReceiptSize); err != nil && err != http.ErrNotMultipart {
			utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		if file, header, err := r.FormFile("receipt"); err == nil {
			defer file.Close()
			params.Receipt = file
			params.ReceiptSize = header.Size
			params.ReceiptType = header.Header.Get("Content-Type")
		}
	}

	result, err := h.CheckoutSvc.Submit(r.Context(), sessionOwner(w, r), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// CheckoutCallback handles the browser's return from the hosted
// payment page with a reference query parameter.
func (h *Handler) CheckoutCallback(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		utils.WriteJSONError(w, "missing reference", http.StatusBadRequest)
		return
	}

	result, err := h.CheckoutSvc.ConfirmCallback(r.Context(), sessionOwner(w, r), reference)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
