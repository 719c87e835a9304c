package order

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUnauthorized = errors.New("unauthorized: cannot access others' orders")

	// -- Validation & Input --
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")

	// -- Database & Operation Failures --
	ErrFailedCreateOrder = errors.New("failed to create order")
	ErrFailedCreateItems = errors.New("failed to create order items")
	ErrFailedUpdateOrder = errors.New("failed to update order")
)
