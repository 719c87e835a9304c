package payment

import (
	"context"
	"errors"
)

var (
	ErrMissingAuthorizationURL = errors.New("gateway response missing authorization_url")
	ErrMissingReference        = errors.New("missing payment reference")
)

// Gateway is the payment boundary: initialize hands the shopper to the
// hosted payment page, verify looks the transaction up afterwards.
type Gateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}
