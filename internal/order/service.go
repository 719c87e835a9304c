package order

import (
	"context"

	"glamour-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetOrdersForUser(ctx context.Context, userID string) ([]*Order, error)
	GetOrderDetail(ctx context.Context, userID, orderID string, isAdmin bool) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status *Status, payStatus *PaymentStatus) error
	ConfirmPayment(ctx context.Context, orderID string) error
	RejectPayment(ctx context.Context, orderID string) error
	DashboardStats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOrdersForUser(ctx context.Context, userID string) ([]*Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.GetOrdersByUser(ctx, userID)
}

// GetOrderDetail returns the order with line items; a non-admin caller
// only sees their own.
func (s *service) GetOrderDetail(ctx context.Context, userID, orderID string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != userID {
		return nil, ErrUnauthorized
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.GetOrders(ctx, filter)
}

// UpdateOrderStatus sets the given fields after checking they are
// known values. Transition legality is intentionally not enforced; the
// admin console may set any status over any other.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID string, status *Status, payStatus *PaymentStatus) error {
	if status != nil && !ValidStatus(*status) {
		return ErrInvalidStatus
	}
	if payStatus != nil && !ValidPaymentStatus(*payStatus) {
		return ErrInvalidPaymentStatus
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status, payStatus); err != nil {
		return err
	}

	log := logger.FromCtx(ctx).With(zap.String("order_id", orderID))
	if status != nil {
		log = log.With(zap.String("status", string(*status)))
	}
	if payStatus != nil {
		log = log.With(zap.String("payment_status", string(*payStatus)))
	}
	log.Info("order status updated")
	return nil
}

// ConfirmPayment is the manual bank-transfer review action: marks the
// payment paid and the order confirmed in one update.
func (s *service) ConfirmPayment(ctx context.Context, orderID string) error {
	status := StatusConfirmed
	payStatus := PaymentPaid
	return s.UpdateOrderStatus(ctx, orderID, &status, &payStatus)
}

// RejectPayment marks the payment failed and the order payment_failed
// in one update.
func (s *service) RejectPayment(ctx context.Context, orderID string) error {
	status := StatusPaymentFailed
	payStatus := PaymentFailed
	return s.UpdateOrderStatus(ctx, orderID, &status, &payStatus)
}

func (s *service) DashboardStats(ctx context.Context) (*Stats, error) {
	return s.repo.GetStats(ctx)
}
