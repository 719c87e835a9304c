package checkout

import "errors"

var (
	// -- Authentication --
	ErrNotAuthenticated = errors.New("authentication required to place an order")

	// -- Validation & Input --
	ErrShippingIncomplete = errors.New("shipping information is incomplete")
	ErrUnknownLocation    = errors.New("unknown delivery location")
	ErrInvalidCoupon      = errors.New("this coupon code is not valid")
	ErrReceiptRequired    = errors.New("a payment receipt is required for bank transfer orders")
	ErrUnknownMethod      = errors.New("unknown payment method")

	// -- Resource State --
	ErrCartEmpty = errors.New("cart is empty")
)
