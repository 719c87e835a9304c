package cart

import "fmt"

// ItemVariant is the style option chosen when the item was added. The
// price is the price at add time, not a live catalog lookup.
type ItemVariant struct {
	ID            string `json:"id"`
	Style         string `json:"style"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
}

// Item is one distinct (product, variant, color) selection.
type Item struct {
	ID        string      `json:"id"`
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Image     string      `json:"image"`
	Variant   ItemVariant `json:"variant"`
	Color     string      `json:"color"`
	Quantity  int         `json:"quantity"`
}

// NewItemParams is an item without identity; the store derives the
// composite key itself.
type NewItemParams struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Image     string      `json:"image"`
	Variant   ItemVariant `json:"variant"`
	Color     string      `json:"color"`
	Quantity  int         `json:"quantity"`
}

// CompositeKey builds the deterministic line-item identity.
func CompositeKey(productID, variantID, color string) string {
	return fmt.Sprintf("%s-%s-%s", productID, variantID, color)
}
