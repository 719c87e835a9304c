package checkout

import "strings"

// Coupons are a fixed in-memory table: no expiry, no usage limits, no
// per-user tracking. Codes are matched case-insensitively.
var coupons = map[string]float64{
	"GLAMOUR15": 0.15,
	"WELCOME10": 0.10,
}

// LookupCoupon normalizes the code and returns its discount fraction.
func LookupCoupon(code string) (float64, bool) {
	fraction, ok := coupons[strings.ToUpper(strings.TrimSpace(code))]
	return fraction, ok
}
