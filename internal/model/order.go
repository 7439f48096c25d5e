package model

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	BaseModel
	CustomerID      *string     `db:"customer_id" json:"customer_id"`
	Email           string      `db:"email" json:"email"`
	Status          string      `db:"status" json:"status"`
	Currency        string      `db:"currency" json:"currency"`
	Total           float64     `db:"total" json:"total"`
	StripeSessionID *string     `db:"stripe_session_id" json:"stripe_session_id"`
	Items           []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem keeps the composite variant key ("productId[:color][:size]")
// the cart used, so a line item stays tied to the exact selection even if
// the variant rows change later.
type OrderItem struct {
	ID          string  `db:"id" json:"id"`
	OrderID     string  `db:"order_id" json:"order_id"`
	ProductID   string  `db:"product_id" json:"product_id"`
	VariantKey  string  `db:"variant_key" json:"variant_key"`
	ProductName string  `db:"product_name" json:"product_name"`
	Color       *string `db:"color" json:"color"`
	Size        *string `db:"size" json:"size"`
	Quantity    int     `db:"quantity" json:"quantity"`
	UnitPrice   float64 `db:"unit_price" json:"unit_price"`
}
