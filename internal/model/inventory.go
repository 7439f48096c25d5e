package model

import "time"

// StockMovement is an immutable audit record of a manual or system stock
// adjustment against one variant row. Movements are only ever inserted;
// the product and variant references go null when their target is deleted
// so the history outlives the rows it describes.
type StockMovement struct {
	ID        string    `db:"id" json:"id"`
	ProductID *string   `db:"product_id" json:"product_id"`
	VariantID *string   `db:"variant_id" json:"variant_id"`
	Delta     int       `db:"delta" json:"delta"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedBy *string   `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Well-known movement reasons written by the system itself. Admin-entered
// reasons are free text and never interpreted.
const (
	MovementReasonOrderSale = "order sale"
)
