package dto

type CreateProductInput struct {
	CategoryID  *string
	SKU         string
	Slug        string
	Name        string
	Description *string
	Price       float64
	SalePrice   *float64
	ImageURL    *string
	IsFeatured  bool
}

type UpdateProductInput struct {
	ID          string
	CategoryID  *string
	SKU         string
	Slug        string
	Name        string
	Description *string
	Price       float64
	SalePrice   *float64
	ImageURL    *string
	IsFeatured  bool
	IsActive    bool
}

type ProductFilters struct {
	CategoryID  string
	IsActive    *bool
	IsFeatured  *bool
	SearchQuery string
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
