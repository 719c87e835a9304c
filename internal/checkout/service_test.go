package checkout

import (
	"context"
	"io"
	"strings"
	"testing"

	"glamour-be/internal/cart"
	"glamour-be/internal/order"
	"glamour-be/internal/payment"
	"glamour-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of the order.Repository interface
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrderWithItems(ctx context.Context, o *order.Order, items []order.Item) error {
	args := m.Called(ctx, o, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrdersByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID string, status *order.Status, payStatus *order.PaymentStatus) error {
	args := m.Called(ctx, orderID, status, payStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) SetReceipt(ctx context.Context, orderID, receiptURL string, payStatus order.PaymentStatus) error {
	args := m.Called(ctx, orderID, receiptURL, payStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateByPaymentReference(ctx context.Context, reference string, payStatus order.PaymentStatus, status order.Status) error {
	args := m.Called(ctx, reference, payStatus, status)
	return args.Error(0)
}

func (m *MockOrderRepository) GetStats(ctx context.Context) (*order.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Stats), args.Error(1)
}

// MockGateway is a mock implementation of the payment.Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Initialize(ctx context.Context, req payment.InitializeRequest) (*payment.InitializeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.InitializeResponse), args.Error(1)
}

func (m *MockGateway) Verify(ctx context.Context, reference string) (*payment.VerifyResult, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.VerifyResult), args.Error(1)
}

// MockReceiptStore is a mock implementation of the storage.Store interface
type MockReceiptStore struct {
	mock.Mock
}

func (m *MockReceiptStore) SaveReceipt(ctx context.Context, userID, orderID, contentType string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, userID, orderID, contentType, r, size)
	return args.String(0), args.Error(1)
}

type fixture struct {
	svc     Service
	carts   *cart.Manager
	repo    *MockOrderRepository
	gateway *MockGateway
	store   *MockReceiptStore
}

func newFixture() *fixture {
	repo := new(MockOrderRepository)
	gateway := new(MockGateway)
	store := new(MockReceiptStore)
	carts := cart.NewManager(nil)
	functions := payment.NewFunctions(gateway, repo)
	svc := NewService(carts, repo, functions, store, "http://localhost:3000/checkout/callback")
	return &fixture{svc: svc, carts: carts, repo: repo, gateway: gateway, store: store}
}

func validShipping() ShippingInfo {
	return ShippingInfo{
		FirstName:  "Ada",
		LastName:   "Obi",
		Email:      "ada@example.com",
		Phone:      "+2348012345678",
		Address:    "12 Marina Road",
		City:       "Abuja",
		State:      "FCT",
		LocationID: "abuja",
	}
}

func fillCart(f *fixture, owner string) {
	f.carts.StoreFor(owner).AddItem(cart.NewItemParams{
		ProductID: "prod-1",
		Name:      "Eternal Ring",
		Image:     "/images/ring.jpg",
		Variant:   cart.ItemVariant{ID: "var-1", Style: "Gold", Price: 18500},
		Color:     "gold",
		Quantity:  2,
	})
}

func authedCtx(userID string) context.Context {
	return utils.SetUserContext(context.Background(), userID, "ada@example.com", "USER")
}

func TestWizardSteps(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := "sess-1"

	t.Run("starts on shipping with gateway preselected", func(t *testing.T) {
		sess := f.svc.GetSession(ctx, owner)
		assert.Equal(t, StepShipping, sess.Step)
		assert.Equal(t, order.MethodPaystack, sess.PaymentMethod)
	})

	t.Run("cannot advance with incomplete shipping", func(t *testing.T) {
		_, err := f.svc.NextStep(ctx, owner)
		assert.ErrorIs(t, err, ErrShippingIncomplete)
	})

	t.Run("cannot advance with unknown location", func(t *testing.T) {
		info := validShipping()
		info.LocationID = "atlantis"
		f.svc.SetShipping(ctx, owner, info)

		_, err := f.svc.NextStep(ctx, owner)
		assert.ErrorIs(t, err, ErrUnknownLocation)
	})

	t.Run("advances through payment to review", func(t *testing.T) {
		f.svc.SetShipping(ctx, owner, validShipping())

		sess, err := f.svc.NextStep(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, StepPayment, sess.Step)

		sess, err = f.svc.NextStep(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, StepReview, sess.Step)
	})

	t.Run("back keeps entered data", func(t *testing.T) {
		sess := f.svc.PrevStep(ctx, owner)
		assert.Equal(t, StepPayment, sess.Step)
		assert.Equal(t, "Ada", sess.Shipping.FirstName)

		sess = f.svc.PrevStep(ctx, owner)
		assert.Equal(t, StepShipping, sess.Step)

		// already at the first step
		sess = f.svc.PrevStep(ctx, owner)
		assert.Equal(t, StepShipping, sess.Step)
	})
}

func TestSelectPaymentMethod(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sess, err := f.svc.SelectPaymentMethod(ctx, "sess-1", order.MethodBankTransfer)
	require.NoError(t, err)
	assert.Equal(t, order.MethodBankTransfer, sess.PaymentMethod)

	_, err = f.svc.SelectPaymentMethod(ctx, "sess-1", "crypto")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestCoupons(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := "sess-1"
	fillCart(f, owner)
	f.svc.SetShipping(ctx, owner, validShipping())

	t.Run("invalid code rejected without state change", func(t *testing.T) {
		_, err := f.svc.ApplyCoupon(ctx, owner, "SAVE99")
		assert.ErrorIs(t, err, ErrInvalidCoupon)
		assert.False(t, f.svc.GetSession(ctx, owner).CouponApplied)
	})

	t.Run("valid code discounts the quote", func(t *testing.T) {
		sess, err := f.svc.ApplyCoupon(ctx, owner, "GLAMOUR15")
		require.NoError(t, err)
		assert.True(t, sess.CouponApplied)

		q := f.svc.GetQuote(ctx, owner)
		assert.Equal(t, int64(37000), q.Subtotal)
		assert.Equal(t, int64(5550), q.DiscountAmount)
		assert.Equal(t, int64(5000), q.ShippingFee)
		assert.Equal(t, int64(36450), q.Total)
	})

	t.Run("reapplying the same code is idempotent", func(t *testing.T) {
		_, err := f.svc.ApplyCoupon(ctx, owner, "GLAMOUR15")
		require.NoError(t, err)
		assert.Equal(t, int64(5550), f.svc.GetQuote(ctx, owner).DiscountAmount)
	})

	t.Run("new code replaces, never stacks", func(t *testing.T) {
		sess, err := f.svc.ApplyCoupon(ctx, owner, "WELCOME10")
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", sess.CouponCode)
		assert.Equal(t, int64(3700), f.svc.GetQuote(ctx, owner).DiscountAmount)
	})

	t.Run("remove restores full price", func(t *testing.T) {
		sess := f.svc.RemoveCoupon(ctx, owner)
		assert.False(t, sess.CouponApplied)
		assert.Equal(t, int64(0), f.svc.GetQuote(ctx, owner).DiscountAmount)
	})
}

func TestSubmitRejections(t *testing.T) {
	t.Run("unauthenticated, nothing written", func(t *testing.T) {
		f := newFixture()
		fillCart(f, "sess-1")
		f.svc.SetShipping(context.Background(), "sess-1", validShipping())

		_, err := f.svc.Submit(context.Background(), "sess-1", SubmitParams{})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		f.repo.AssertNotCalled(t, "CreateOrderWithItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newFixture()
		f.svc.SetShipping(context.Background(), "sess-1", validShipping())

		_, err := f.svc.Submit(authedCtx("user-1"), "sess-1", SubmitParams{})
		assert.ErrorIs(t, err, ErrCartEmpty)
	})

	t.Run("incomplete shipping", func(t *testing.T) {
		f := newFixture()
		fillCart(f, "sess-1")

		_, err := f.svc.Submit(authedCtx("user-1"), "sess-1", SubmitParams{})
		assert.ErrorIs(t, err, ErrShippingIncomplete)
	})

	t.Run("bank transfer without receipt, rejected before any insert", func(t *testing.T) {
		f := newFixture()
		fillCart(f, "sess-1")
		f.svc.SetShipping(context.Background(), "sess-1", validShipping())
		_, err := f.svc.SelectPaymentMethod(context.Background(), "sess-1", order.MethodBankTransfer)
		require.NoError(t, err)

		_, err = f.svc.Submit(authedCtx("user-1"), "sess-1", SubmitParams{})
		assert.ErrorIs(t, err, ErrReceiptRequired)
		f.repo.AssertNotCalled(t, "CreateOrderWithItems", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSubmitPaystack(t *testing.T) {
	f := newFixture()
	ctx := authedCtx("user-1")
	owner := "sess-1"
	fillCart(f, owner)
	f.svc.SetShipping(ctx, owner, validShipping())
	_, err := f.svc.ApplyCoupon(ctx, owner, "GLAMOUR15")
	require.NoError(t, err)

	var captured *order.Order
	f.repo.On("CreateOrderWithItems", mock.Anything, mock.AnythingOfType("*order.Order"), mock.AnythingOfType("[]order.Item")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*order.Order)
		}).
		Return(nil)

	f.gateway.On("Initialize", mock.Anything, mock.MatchedBy(func(req payment.InitializeRequest) bool {
		return req.Amount == 36450 && req.Email == "ada@example.com"
	})).Return(&payment.InitializeResponse{
		AuthorizationURL: "https://checkout.paystack.com/abc123",
		AccessCode:       "abc123",
		Reference:        "ref-1",
	}, nil)

	result, err := f.svc.Submit(ctx, owner, SubmitParams{})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
	assert.Equal(t, string(order.PaymentPending), result.PaymentStatus)

	require.NotNil(t, captured)
	assert.Equal(t, "user-1", captured.UserID)
	assert.Equal(t, order.StatusPending, captured.Status)
	assert.Equal(t, order.MethodPaystack, captured.PaymentMethod)
	assert.Equal(t, int64(37000), captured.Subtotal)
	assert.Equal(t, int64(5550), captured.Discount)
	assert.Equal(t, int64(5000), captured.ShippingFee)
	assert.Equal(t, int64(36450), captured.Total)
	assert.Equal(t, "Ada Obi", captured.ShippingName)
	require.NotNil(t, captured.CouponCode)
	assert.Equal(t, "GLAMOUR15", *captured.CouponCode)

	// cart survives until the gateway confirms payment
	assert.NotEmpty(t, f.carts.StoreFor(owner).Items())
	f.repo.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
}

func TestSubmitPaystackInitializeFails(t *testing.T) {
	f := newFixture()
	ctx := authedCtx("user-1")
	owner := "sess-1"
	fillCart(f, owner)
	f.svc.SetShipping(ctx, owner, validShipping())

	f.repo.On("CreateOrderWithItems", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.gateway.On("Initialize", mock.Anything, mock.Anything).
		Return(nil, payment.ErrMissingAuthorizationURL)

	_, err := f.svc.Submit(ctx, owner, SubmitParams{})
	require.Error(t, err)
	assert.ErrorIs(t, err, payment.ErrMissingAuthorizationURL)

	// the pending order stays behind; the cart is untouched
	f.repo.AssertCalled(t, "CreateOrderWithItems", mock.Anything, mock.Anything, mock.Anything)
	assert.NotEmpty(t, f.carts.StoreFor(owner).Items())
}

func TestSubmitBankTransfer(t *testing.T) {
	f := newFixture()
	ctx := authedCtx("user-1")
	owner := "sess-1"
	fillCart(f, owner)
	f.svc.SetShipping(ctx, owner, validShipping())
	_, err := f.svc.SelectPaymentMethod(ctx, owner, order.MethodBankTransfer)
	require.NoError(t, err)

	var orderID string
	f.repo.On("CreateOrderWithItems", mock.Anything, mock.AnythingOfType("*order.Order"), mock.AnythingOfType("[]order.Item")).
		Run(func(args mock.Arguments) {
			orderID = args.Get(1).(*order.Order).ID
		}).
		Return(nil)
	f.store.On("SaveReceipt", mock.Anything, "user-1", mock.AnythingOfType("string"), "image/png", mock.Anything, int64(4)).
		Return("/receipts/user-1/order.png", nil)
	f.repo.On("SetReceipt", mock.Anything, mock.AnythingOfType("string"), "/receipts/user-1/order.png", order.PaymentAwaitingConfirmation).
		Return(nil)

	result, err := f.svc.Submit(ctx, owner, SubmitParams{
		Receipt:     strings.NewReader("data"),
		ReceiptType: "image/png",
		ReceiptSize: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, orderID, result.OrderID)
	assert.Equal(t, string(order.PaymentAwaitingConfirmation), result.PaymentStatus)
	assert.Equal(t, "/receipts/user-1/order.png", result.ReceiptURL)

	// the cart and wizard reset immediately on the manual path
	assert.Empty(t, f.carts.StoreFor(owner).Items())
	assert.Equal(t, StepShipping, f.svc.GetSession(ctx, owner).Step)
	f.repo.AssertExpectations(t)
	f.store.AssertExpectations(t)
}

func TestConfirmCallback(t *testing.T) {
	t.Run("success clears cart and resets session", func(t *testing.T) {
		f := newFixture()
		owner := "sess-1"
		fillCart(f, owner)

		f.gateway.On("Verify", mock.Anything, "order-1").
			Return(&payment.VerifyResult{Status: payment.StatusSuccess, Amount: 36450, Reference: "order-1"}, nil)
		f.repo.On("UpdateByPaymentReference", mock.Anything, "order-1", order.PaymentPaid, order.StatusConfirmed).
			Return(nil)

		result, err := f.svc.ConfirmCallback(context.Background(), owner, "order-1")
		require.NoError(t, err)
		assert.Equal(t, payment.StatusSuccess, result.Status)
		assert.Empty(t, f.carts.StoreFor(owner).Items())
	})

	t.Run("failure keeps the cart", func(t *testing.T) {
		f := newFixture()
		owner := "sess-1"
		fillCart(f, owner)

		f.gateway.On("Verify", mock.Anything, "order-1").
			Return(&payment.VerifyResult{Status: "failed", Reference: "order-1"}, nil)
		f.repo.On("UpdateByPaymentReference", mock.Anything, "order-1", order.PaymentFailed, order.StatusPaymentFailed).
			Return(nil)

		result, err := f.svc.ConfirmCallback(context.Background(), owner, "order-1")
		require.NoError(t, err)
		assert.Equal(t, "failed", result.Status)
		assert.NotEmpty(t, f.carts.StoreFor(owner).Items())
	})
}
