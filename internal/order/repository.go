package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"glamour-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderWithItems(ctx context.Context, o *Order, items []Item) error
	GetOrdersByUser(ctx context.Context, userID string) ([]*Order, error)
	GetOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status *Status, payStatus *PaymentStatus) error
	SetReceipt(ctx context.Context, orderID, receiptURL string, payStatus PaymentStatus) error
	UpdateByPaymentReference(ctx context.Context, reference string, payStatus PaymentStatus, status Status) error
	GetStats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id,
	user_id,
	status,
	payment_status,
	payment_method,
	payment_reference,
	payment_receipt_url,
	subtotal,
	shipping_fee,
	discount,
	total,
	coupon_code,
	shipping_name,
	shipping_email,
	shipping_phone,
	shipping_address,
	shipping_city,
	shipping_state,
	notes,
	created_at`

// CreateOrderWithItems inserts the order row and its item snapshots in
// a single transaction.
func (r *repository) CreateOrderWithItems(ctx context.Context, o *Order, items []Item) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderWithItems"),
		zap.String("order_id", o.ID),
		zap.Int("item_count", len(items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO orders (
		id, user_id, status, payment_status, payment_method,
		subtotal, shipping_fee, discount, total, coupon_code,
		shipping_name, shipping_email, shipping_phone,
		shipping_address, shipping_city, shipping_state, notes
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`,
		o.ID, o.UserID, o.Status, o.PaymentStatus, o.PaymentMethod,
		o.Subtotal, o.ShippingFee, o.Discount, o.Total, o.CouponCode,
		o.ShippingName, o.ShippingEmail, o.ShippingPhone,
		o.ShippingAddress, o.ShippingCity, o.ShippingState, o.Notes,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedCreateOrder, err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO order_items (
			order_id, product_id, product_name, product_image,
			variant_style, variant_price, color, quantity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			o.ID, item.ProductID, item.ProductName, item.ProductImage,
			item.VariantStyle, item.VariantPrice, item.Color, item.Quantity,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %v", ErrFailedCreateItems, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order created")
	return nil
}

func (r *repository) GetOrdersByUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT`+orderColumns+`
	FROM orders
	WHERE user_id = $1
	ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(ctx, rows)
}

func (r *repository) GetOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrders"),
	)

	start := time.Now()

	where := []string{}
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(id::text ILIKE $%d OR shipping_name ILIKE $%d OR shipping_email ILIKE $%d)",
			n, n, n,
		))
	}

	query := `SELECT` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders, err := r.collectOrders(ctx, rows)
	if err != nil {
		return nil, err
	}

	log.Info("query success",
		zap.Int("rows", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)
	return orders, nil
}

func (r *repository) collectOrders(ctx context.Context, rows *sql.Rows) ([]*Order, error) {
	orders := make([]*Order, 0)
	byID := make(map[string]*Order)

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachItems(ctx, byID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) attachItems(ctx context.Context, byID map[string]*Order) error {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT
		id, order_id, product_id, product_name, product_image,
		variant_style, variant_price, color, quantity
	FROM order_items
	WHERE order_id = ANY($1)
	ORDER BY id
	`, idArray(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *repository) GetOrderByID(ctx context.Context, orderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT`+orderColumns+`
	FROM orders
	WHERE id = $1
	`, orderID)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, map[string]*Order{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus sets status and/or payment_status in one UPDATE; either
// pointer may be nil to leave that column untouched.
func (r *repository) UpdateStatus(ctx context.Context, orderID string, status *Status, payStatus *PaymentStatus) error {
	sets := []string{}
	args := []any{}

	if status != nil {
		args = append(args, *status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if payStatus != nil {
		args = append(args, *payStatus)
		sets = append(sets, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, orderID)
	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateOrder, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// SetReceipt stores the uploaded receipt URL and moves the payment
// status in one write. Fulfillment status is untouched.
func (r *repository) SetReceipt(ctx context.Context, orderID, receiptURL string, payStatus PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE orders
	SET payment_receipt_url = $1, payment_status = $2
	WHERE id = $3
	`, receiptURL, payStatus, orderID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateOrder, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdateByPaymentReference is the privileged verification write. It
// bypasses ownership checks: the gateway reference is the authorization
// at this point. The reference doubles as the order id, matching how
// the storefront hands the order id to the gateway at initialize time.
func (r *repository) UpdateByPaymentReference(ctx context.Context, reference string, payStatus PaymentStatus, status Status) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE orders
	SET payment_status = $1, payment_reference = $2, status = $3
	WHERE id = $4
	`, payStatus, reference, status, reference)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateOrder, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx, `
	SELECT
		COUNT(*),
		COALESCE(SUM(total) FILTER (WHERE payment_status = 'paid'), 0),
		COUNT(*) FILTER (WHERE status = 'pending'),
		COUNT(*) FILTER (WHERE payment_status = 'awaiting_confirmation')
	FROM orders
	`).Scan(&s.TotalOrders, &s.TotalRevenue, &s.PendingOrders, &s.AwaitingConfirmation)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
