package order

import (
	"database/sql"
	"database/sql/driver"

	"github.com/lib/pq"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*Order, error) {
	o := &Order{}
	var reference, receipt, coupon, notes sql.NullString

	err := s.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.PaymentStatus,
		&o.PaymentMethod,
		&reference,
		&receipt,
		&o.Subtotal,
		&o.ShippingFee,
		&o.Discount,
		&o.Total,
		&coupon,
		&o.ShippingName,
		&o.ShippingEmail,
		&o.ShippingPhone,
		&o.ShippingAddress,
		&o.ShippingCity,
		&o.ShippingState,
		&notes,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.PaymentReference = nullableString(reference)
	o.ReceiptURL = nullableString(receipt)
	o.CouponCode = nullableString(coupon)
	o.Notes = nullableString(notes)
	return o, nil
}

func scanItem(s scanner) (Item, error) {
	var item Item
	err := s.Scan(
		&item.ID,
		&item.OrderID,
		&item.ProductID,
		&item.ProductName,
		&item.ProductImage,
		&item.VariantStyle,
		&item.VariantPrice,
		&item.Color,
		&item.Quantity,
	)
	return item, err
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func idArray(ids []string) driver.Valuer {
	return pq.Array(ids)
}
