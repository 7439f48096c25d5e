package model

// VariantRow is one named attribute/value pair attached to a product,
// e.g. {"Couleur", "Noir"} or {"Taille", "M"}. Rows sharing a non-empty SKU
// describe the same physical combination.
type VariantRow struct {
	BaseModel
	ProductID     string  `db:"product_id" json:"product_id"`
	Name          string  `db:"name" json:"name"`
	Value         string  `db:"value" json:"value"`
	SKU           *string `db:"sku" json:"sku"`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity"`
	PriceModifier float64 `db:"price_modifier" json:"price_modifier"`
	IsActive      *bool   `db:"is_active" json:"is_active"`
}

// Active treats a null is_active as active; only an explicit false
// deactivates a row.
func (r *VariantRow) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

func (r *VariantRow) SKUValue() string {
	if r.SKU == nil {
		return ""
	}
	return *r.SKU
}
