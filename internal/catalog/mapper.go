package catalog

import "database/sql"

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*Product, error) {
	p := &Product{
		Images:   []string{},
		Colors:   []Color{},
		Variants: []Variant{},
	}
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CategoryID,
		&p.Rating,
		&p.Reviews,
		&p.InStock,
		&p.StockQuantity,
		&p.Featured,
		&p.NewArrival,
		&p.Bestseller,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanVariant(s scanner) (Variant, error) {
	var v Variant
	var original sql.NullInt64
	err := s.Scan(&v.ID, &v.ProductID, &v.Style, &v.Price, &original)
	if err != nil {
		return Variant{}, err
	}
	if original.Valid {
		v.OriginalPrice = &original.Int64
	}
	return v, nil
}
