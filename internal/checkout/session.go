package checkout

import (
	"time"

	"glamour-be/internal/order"
)

// Step is the checkout wizard position. Forward progress is gated by
// validation; going back never loses entered data.
type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
)

// ShippingInfo is the data captured on the first step. LocationID must
// match an entry in the delivery-location table.
type ShippingInfo struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Notes      string `json:"notes"`
	LocationID string `json:"locationId"`
}

// Valid reports whether the step-one gate is satisfied.
func (s ShippingInfo) Valid() bool {
	return s.FirstName != "" &&
		s.LastName != "" &&
		s.Email != "" &&
		s.Phone != "" &&
		s.Address != "" &&
		s.LocationID != ""
}

// Session holds one shopper's wizard state. All mutation goes through
// the Service, which serializes access.
type Session struct {
	Owner            string              `json:"owner"`
	Step             Step                `json:"step"`
	Shipping         ShippingInfo        `json:"shipping"`
	PaymentMethod    order.PaymentMethod `json:"paymentMethod"`
	CouponCode       string              `json:"couponCode"`
	CouponApplied    bool                `json:"couponApplied"`
	DiscountFraction float64             `json:"discountFraction"`
	CreatedAt        time.Time           `json:"createdAt"`
}

func newSession(owner string) *Session {
	return &Session{
		Owner:         owner,
		Step:          StepShipping,
		PaymentMethod: order.MethodPaystack,
		CreatedAt:     time.Now(),
	}
}

// advance moves one step forward. Leaving Shipping requires valid
// shipping data with a known location; leaving Payment is not gated
// (the receipt requirement is enforced at submission, not here).
func (s *Session) advance() error {
	switch s.Step {
	case StepShipping:
		if !s.Shipping.Valid() {
			return ErrShippingIncomplete
		}
		if _, ok := LocationByID(s.Shipping.LocationID); !ok {
			return ErrUnknownLocation
		}
		s.Step = StepPayment
	case StepPayment:
		s.Step = StepReview
	}
	return nil
}

// back moves one step toward Shipping, keeping all entered data.
func (s *Session) back() {
	if s.Step > StepShipping {
		s.Step--
	}
}

// applyCoupon replaces any active coupon; it never stacks.
func (s *Session) applyCoupon(code string) error {
	fraction, ok := LookupCoupon(code)
	if !ok {
		return ErrInvalidCoupon
	}
	s.CouponCode = code
	s.CouponApplied = true
	s.DiscountFraction = fraction
	return nil
}

func (s *Session) removeCoupon() {
	s.CouponCode = ""
	s.CouponApplied = false
	s.DiscountFraction = 0
}

// shippingFee is zero until a location is selected.
func (s *Session) shippingFee() int64 {
	loc, ok := LocationByID(s.Shipping.LocationID)
	if !ok {
		return 0
	}
	return loc.Fee
}

// quote prices the session against the given cart subtotal.
func (s *Session) quote(subtotal int64) Quote {
	fraction := 0.0
	if s.CouponApplied {
		fraction = s.DiscountFraction
	}
	return ComputeQuote(subtotal, fraction, s.shippingFee())
}
