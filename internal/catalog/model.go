package catalog

import "time"

// Variant is a purchasable style option of a product with its own price.
type Variant struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	Style         string `json:"style"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
}

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CategoryID    string    `json:"category"`
	Images        []string  `json:"images"`
	Colors        []Color   `json:"colors"`
	Variants      []Variant `json:"variants"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	InStock       bool      `json:"inStock"`
	StockQuantity int       `json:"stockQuantity"`
	Featured      bool      `json:"featured"`
	NewArrival    bool      `json:"newArrival"`
	Bestseller    bool      `json:"bestseller"`
	CreatedAt     time.Time `json:"-"`
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"-"`
}
