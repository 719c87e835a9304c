package checkout

import "math"

// Quote is the monetary breakdown for one checkout attempt. Amounts
// are whole naira.
type Quote struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discount"`
	ShippingFee    int64 `json:"shipping_fee"`
	Total          int64 `json:"total"`
}

// ComputeQuote applies the pricing rule:
//
//	discount_amount = round(subtotal * discount_fraction)
//	total           = subtotal - discount_amount + shipping_fee
func ComputeQuote(subtotal int64, discountFraction float64, shippingFee int64) Quote {
	discount := int64(math.Round(float64(subtotal) * discountFraction))
	return Quote{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		ShippingFee:    shippingFee,
		Total:          subtotal - discount + shippingFee,
	}
}
