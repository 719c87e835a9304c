package checkout

import (
	"context"
	"fmt"
	"io"
	"sync"

	"glamour-be/internal/cart"
	"glamour-be/internal/logger"
	"glamour-be/internal/order"
	"glamour-be/internal/payment"
	"glamour-be/internal/storage"
	"glamour-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitParams carries the optional receipt upload. Receipt is nil for
// the gateway path.
type SubmitParams struct {
	Receipt     io.Reader
	ReceiptType string
	ReceiptSize int64
}

// SubmitResult tells the storefront what happens next: either redirect
// the browser to AuthorizationURL, or the order is already awaiting
// manual confirmation.
type SubmitResult struct {
	OrderID          string `json:"orderId"`
	PaymentStatus    string `json:"payment_status"`
	AuthorizationURL string `json:"authorization_url,omitempty"`
	ReceiptURL       string `json:"receipt_url,omitempty"`
}

type Service interface {
	GetSession(ctx context.Context, owner string) *Session
	SetShipping(ctx context.Context, owner string, info ShippingInfo) *Session
	SelectPaymentMethod(ctx context.Context, owner string, method order.PaymentMethod) (*Session, error)
	NextStep(ctx context.Context, owner string) (*Session, error)
	PrevStep(ctx context.Context, owner string) *Session
	ApplyCoupon(ctx context.Context, owner, code string) (*Session, error)
	RemoveCoupon(ctx context.Context, owner string) *Session
	GetQuote(ctx context.Context, owner string) Quote
	Submit(ctx context.Context, owner string, params SubmitParams) (*SubmitResult, error)
	ConfirmCallback(ctx context.Context, owner, reference string) (*payment.VerifyResult, error)
}

type service struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	carts     *cart.Manager
	orders    order.Repository
	functions *payment.Functions
	receipts  storage.Store

	// Where the hosted payment page sends the browser back to.
	callbackURL string
}

func NewService(
	carts *cart.Manager,
	orders order.Repository,
	functions *payment.Functions,
	receipts storage.Store,
	callbackURL string,
) Service {
	return &service{
		sessions:    make(map[string]*Session),
		carts:       carts,
		orders:      orders,
		functions:   functions,
		receipts:    receipts,
		callbackURL: callbackURL,
	}
}

func (s *service) sessionFor(owner string) *Session {
	if sess, ok := s.sessions[owner]; ok {
		return sess
	}
	sess := newSession(owner)
	s.sessions[owner] = sess
	return sess
}

func (s *service) GetSession(ctx context.Context, owner string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *s.sessionFor(owner)
	return &sess
}

// SetShipping stores the entered data without moving the wizard;
// validation only gates forward progress.
func (s *service) SetShipping(ctx context.Context, owner string, info ShippingInfo) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionFor(owner)
	sess.Shipping = info
	out := *sess
	return &out
}

func (s *service) SelectPaymentMethod(ctx context.Context, owner string, method order.PaymentMethod) (*Session, error) {
	if method != order.MethodPaystack && method != order.MethodBankTransfer {
		return nil, ErrUnknownMethod
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionFor(owner)
	sess.PaymentMethod = method
	out := *sess
	return &out, nil
}

func (s *service) NextStep(ctx context.Context, owner string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionFor(owner)
	if err := sess.advance(); err != nil {
		return nil, err
	}
	out := *sess
	return &out, nil
}

func (s *service) PrevStep(ctx context.Context, owner string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionFor(owner)
	sess.back()
	out := *sess
	return &out
}

// ApplyCoupon replaces any active coupon. Reapplying the same valid
// code is a no-op; an unknown code is rejected with no state change.
func (s *service) ApplyCoupon(ctx context.Context, owner, code string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionFor(owner)
	if err := sess.applyCoupon(code); err != nil {
		return nil, err
	}
	out := *sess
	return &out, nil
}

func (s *service) RemoveCoupon(ctx context.Context, owner string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionFor(owner)
	sess.removeCoupon()
	out := *sess
	return &out
}

func (s *service) GetQuote(ctx context.Context, owner string) Quote {
	subtotal := s.carts.StoreFor(owner).TotalPrice()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionFor(owner).quote(subtotal)
}

// Submit runs the order-submission algorithm. It is not idempotent:
// a failure after the order insert leaves a pending order behind with
// no rollback, and retrying submits a fresh order.
func (s *service) Submit(ctx context.Context, owner string, params SubmitParams) (*SubmitResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Submit"),
	)

	// 1. Authentication is required before anything is written.
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Warn("unauthenticated checkout attempt")
		return nil, ErrNotAuthenticated
	}

	store := s.carts.StoreFor(owner)
	items := store.Items()
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	s.mu.Lock()
	sess := s.sessionFor(owner)
	if !sess.Shipping.Valid() {
		s.mu.Unlock()
		return nil, ErrShippingIncomplete
	}
	loc, ok := LocationByID(sess.Shipping.LocationID)
	if !ok {
		s.mu.Unlock()
		return nil, ErrUnknownLocation
	}
	method := sess.PaymentMethod
	quote := sess.quote(store.TotalPrice())
	shipping := sess.Shipping
	couponCode := sess.CouponCode
	couponApplied := sess.CouponApplied
	s.mu.Unlock()

	// 2. The bank-transfer path needs a valid receipt before any order
	// row exists.
	if method == order.MethodBankTransfer {
		if params.Receipt == nil {
			return nil, ErrReceiptRequired
		}
		if _, err := storage.ValidateReceipt(params.ReceiptType, params.ReceiptSize); err != nil {
			return nil, err
		}
	}

	o := &order.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Status:          order.StatusPending,
		PaymentStatus:   order.PaymentPending,
		PaymentMethod:   method,
		Subtotal:        quote.Subtotal,
		ShippingFee:     quote.ShippingFee,
		Discount:        quote.DiscountAmount,
		Total:           quote.Total,
		ShippingName:    shipping.FirstName + " " + shipping.LastName,
		ShippingEmail:   shipping.Email,
		ShippingPhone:   shipping.Phone,
		ShippingAddress: shipping.Address,
		ShippingCity:    shipping.City,
		ShippingState:   shipping.State,
	}
	if couponApplied {
		o.CouponCode = utils.StrPtr(couponCode)
	}
	if shipping.Notes != "" {
		o.Notes = utils.StrPtr(shipping.Notes)
	}

	orderItems := make([]order.Item, 0, len(items))
	for _, ci := range items {
		orderItems = append(orderItems, order.Item{
			OrderID:      o.ID,
			ProductID:    ci.ProductID,
			ProductName:  ci.Name,
			ProductImage: ci.Image,
			VariantStyle: ci.Variant.Style,
			VariantPrice: ci.Variant.Price,
			Color:        ci.Color,
			Quantity:     ci.Quantity,
		})
	}

	log = log.With(
		zap.String("order_id", o.ID),
		zap.String("payment_method", string(method)),
		zap.Int64("subtotal", quote.Subtotal),
		zap.Int64("discount", quote.DiscountAmount),
		zap.Int64("shipping_fee", loc.Fee),
		zap.Int64("total", quote.Total),
		zap.Int("item_count", len(orderItems)),
	)

	// 3 + 4. Order row plus item snapshots.
	if err := s.orders.CreateOrderWithItems(ctx, o, orderItems); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	// 5. Branch per payment method.
	switch method {
	case order.MethodPaystack:
		initResp, err := s.functions.InitializePayment(ctx, shipping.Email, quote.Total, o.ID, s.callbackURL)
		if err != nil {
			// The pending order stays behind for retry or manual
			// cleanup; the cart is untouched.
			log.Error("payment initialization failed", zap.Error(err))
			return nil, fmt.Errorf("payment initialization failed: %w", err)
		}

		log.Info("order submitted, redirecting to hosted payment page")
		return &SubmitResult{
			OrderID:          o.ID,
			PaymentStatus:    string(order.PaymentPending),
			AuthorizationURL: initResp.AuthorizationURL,
		}, nil

	case order.MethodBankTransfer:
		receiptURL, err := s.receipts.SaveReceipt(ctx, userID, o.ID, params.ReceiptType, params.Receipt, params.ReceiptSize)
		if err != nil {
			log.Error("receipt upload failed", zap.Error(err))
			return nil, err
		}

		if err := s.orders.SetReceipt(ctx, o.ID, receiptURL, order.PaymentAwaitingConfirmation); err != nil {
			log.Error("failed to attach receipt to order", zap.Error(err))
			return nil, err
		}

		store.ClearCart()
		s.resetSession(owner)

		log.Info("order submitted, awaiting manual confirmation")
		return &SubmitResult{
			OrderID:       o.ID,
			PaymentStatus: string(order.PaymentAwaitingConfirmation),
			ReceiptURL:    receiptURL,
		}, nil
	}

	return nil, ErrUnknownMethod
}

// ConfirmCallback handles the browser's return from the hosted payment
// page. The cart is cleared only when the gateway reports success.
func (s *service) ConfirmCallback(ctx context.Context, owner, reference string) (*payment.VerifyResult, error) {
	result, err := s.functions.VerifyPayment(ctx, reference)
	if err != nil {
		return nil, err
	}

	if result.Status == payment.StatusSuccess {
		s.carts.StoreFor(owner).ClearCart()
		s.resetSession(owner)
	}
	return result, nil
}

func (s *service) resetSession(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, owner)
}
