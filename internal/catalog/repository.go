package catalog

import (
	"context"
	"database/sql"
	"time"

	"glamour-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetProducts(ctx context.Context) ([]*Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	GetCategories(ctx context.Context) ([]*Category, error)
	CountProducts(ctx context.Context) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProducts(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProducts"),
	)

	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
	SELECT
		id,
		name,
		description,
		category_id,
		rating,
		reviews,
		in_stock,
		stock_quantity,
		featured,
		new_arrival,
		bestseller,
		created_at
	FROM products
	ORDER BY created_at DESC
	`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0)
	byID := make(map[string]*Product)

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachChildren(ctx, byID); err != nil {
		return nil, err
	}

	log.Info("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT
		id,
		name,
		description,
		category_id,
		rating,
		reviews,
		in_stock,
		stock_quantity,
		featured,
		new_arrival,
		bestseller,
		created_at
	FROM products
	WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	byID := map[string]*Product{p.ID: p}
	if err := r.attachChildren(ctx, byID); err != nil {
		return nil, err
	}

	return p, nil
}

// attachChildren loads images, colors and variants for the given
// products in three queries and assembles them in memory.
func (r *repository) attachChildren(ctx context.Context, byID map[string]*Product) error {
	imgRows, err := r.db.QueryContext(ctx, `
	SELECT product_id, url
	FROM product_images
	ORDER BY product_id, sort_order
	`)
	if err != nil {
		return err
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var productID, url string
		if err := imgRows.Scan(&productID, &url); err != nil {
			return err
		}
		if p, ok := byID[productID]; ok {
			p.Images = append(p.Images, url)
		}
	}
	if err := imgRows.Err(); err != nil {
		return err
	}

	colorRows, err := r.db.QueryContext(ctx, `
	SELECT product_id, name, hex
	FROM product_colors
	`)
	if err != nil {
		return err
	}
	defer colorRows.Close()

	for colorRows.Next() {
		var productID string
		var c Color
		if err := colorRows.Scan(&productID, &c.Name, &c.Hex); err != nil {
			return err
		}
		if p, ok := byID[productID]; ok {
			p.Colors = append(p.Colors, c)
		}
	}
	if err := colorRows.Err(); err != nil {
		return err
	}

	variantRows, err := r.db.QueryContext(ctx, `
	SELECT id, product_id, style, price, original_price
	FROM product_variants
	`)
	if err != nil {
		return err
	}
	defer variantRows.Close()

	for variantRows.Next() {
		v, err := scanVariant(variantRows)
		if err != nil {
			return err
		}
		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	return variantRows.Err()
}

func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, icon, sort_order
	FROM categories
	ORDER BY sort_order
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.SortOrder); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}
