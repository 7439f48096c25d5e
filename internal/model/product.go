package model

type Product struct {
	BaseModel
	CategoryID    *string      `db:"category_id" json:"category_id"`
	SKU           string       `db:"sku" json:"sku"`
	Slug          string       `db:"slug" json:"slug"`
	Name          string       `db:"name" json:"name"`
	Description   *string      `db:"description" json:"description"`
	Price         float64      `db:"price" json:"price"`
	SalePrice     *float64     `db:"sale_price" json:"sale_price"`
	StockQuantity int          `db:"stock_quantity" json:"stock_quantity"`
	ImageURL      *string      `db:"image_url" json:"image_url"`
	IsFeatured    bool         `db:"is_featured" json:"is_featured"`
	IsActive      bool         `db:"is_active" json:"is_active"`
	Variants      []VariantRow `db:"-" json:"variants,omitempty"`
	Category      *Category    `db:"-" json:"category,omitempty"`
}

// BasePrice is the price pricing starts from: the sale price always wins
// when one is set.
func (p *Product) BasePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
