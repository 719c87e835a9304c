package order

import "time"

// Status is the order's logistics state. The normal chain is
// pending -> confirmed -> processing -> shipped -> delivered, with
// cancelled reachable from any non-terminal state and payment_failed
// from pending. The admin surface does not enforce the chain; any
// known value may be set over any other.
type Status string

const (
	StatusPending       Status = "pending"
	StatusConfirmed     Status = "confirmed"
	StatusProcessing    Status = "processing"
	StatusShipped       Status = "shipped"
	StatusDelivered     Status = "delivered"
	StatusCancelled     Status = "cancelled"
	StatusPaymentFailed Status = "payment_failed"
)

// PaymentStatus is the monetary settlement state, distinct from Status.
type PaymentStatus string

const (
	PaymentPending              PaymentStatus = "pending"
	PaymentAwaitingConfirmation PaymentStatus = "awaiting_confirmation"
	PaymentPaid                 PaymentStatus = "paid"
	PaymentFailed               PaymentStatus = "failed"
)

type PaymentMethod string

const (
	MethodPaystack     PaymentMethod = "paystack"
	MethodBankTransfer PaymentMethod = "bank-transfer"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled, StatusPaymentFailed:
		return true
	}
	return false
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentAwaitingConfirmation, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Order is one checkout attempt. Monetary fields are whole naira and
// are frozen at submission time; total = subtotal - discount +
// shipping_fee holds at creation and is never recomputed.
type Order struct {
	ID               string        `json:"id"`
	UserID           string        `json:"user_id"`
	Status           Status        `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	PaymentReference *string       `json:"payment_reference,omitempty"`
	ReceiptURL       *string       `json:"payment_receipt_url,omitempty"`
	Subtotal         int64         `json:"subtotal"`
	ShippingFee      int64         `json:"shipping_fee"`
	Discount         int64         `json:"discount"`
	Total            int64         `json:"total"`
	CouponCode       *string       `json:"coupon_code,omitempty"`
	ShippingName     string        `json:"shipping_name"`
	ShippingEmail    string        `json:"shipping_email"`
	ShippingPhone    string        `json:"shipping_phone"`
	ShippingAddress  string        `json:"shipping_address"`
	ShippingCity     string        `json:"shipping_city"`
	ShippingState    string        `json:"shipping_state"`
	Notes            *string       `json:"notes,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`

	Items []Item `json:"items,omitempty"`
}

// Item is a frozen snapshot of one cart line at order-creation time.
// Later catalog edits must not alter it.
type Item struct {
	ID           int64  `json:"id"`
	OrderID      string `json:"order_id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
	VariantStyle string `json:"variant_style"`
	VariantPrice int64  `json:"variant_price"`
	Color        string `json:"color"`
	Quantity     int    `json:"quantity"`
}

// ListFilter narrows the admin order list.
type ListFilter struct {
	// Exact status match; empty means all.
	Status Status
	// Case-insensitive substring match on id, shipping name or email.
	Search string
}

// Stats feeds the admin dashboard cards.
type Stats struct {
	TotalOrders          int64 `json:"totalOrders"`
	TotalRevenue         int64 `json:"totalRevenue"`
	PendingOrders        int64 `json:"pendingOrders"`
	AwaitingConfirmation int64 `json:"awaitingConfirmation"`
}
