package payment

import (
	"context"

	"glamour-be/internal/logger"
	"glamour-be/internal/order"

	"go.uber.org/zap"
)

// Functions implements the two payment-integration entry points that
// the original deployment ran as serverless functions. Both require an
// authenticated caller; VerifyPayment writes through a privileged
// repository path because at that point the transaction reference, not
// the row's owner, is the authorization check.
type Functions struct {
	gateway Gateway
	orders  order.Repository
}

func NewFunctions(gateway Gateway, orders order.Repository) *Functions {
	return &Functions{gateway: gateway, orders: orders}
}

// InitializePayment starts a hosted-payment transaction for the given
// order. The order id doubles as the gateway reference.
func (f *Functions) InitializePayment(ctx context.Context, email string, amount int64, orderID, callbackURL string) (*InitializeResponse, error) {
	return f.gateway.Initialize(ctx, InitializeRequest{
		Email:       email,
		Amount:      amount,
		Reference:   orderID,
		CallbackURL: callbackURL,
	})
}

// VerifyPayment looks the transaction up with the gateway and settles
// the matching order: paid/confirmed on success, failed/payment_failed
// otherwise. The order lookup is keyed by the reference, which the
// initialize path set to the order id. A failed order update is logged
// and the gateway result still returned, matching the original
// function's behavior.
func (f *Functions) VerifyPayment(ctx context.Context, reference string) (*VerifyResult, error) {
	result, err := f.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	payStatus := order.PaymentFailed
	status := order.StatusPaymentFailed
	if result.Status == StatusSuccess {
		payStatus = order.PaymentPaid
		status = order.StatusConfirmed
	}

	if err := f.orders.UpdateByPaymentReference(ctx, reference, payStatus, status); err != nil {
		logger.FromCtx(ctx).Error("failed to update order after verification",
			zap.String("reference", reference),
			zap.Error(err),
		)
	}

	return result, nil
}
