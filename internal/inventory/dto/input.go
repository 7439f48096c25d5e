package dto

import "github.com/veloura/boutique-service/internal/model"

type AdjustStockInput struct {
	VariantID string
	Delta     int
	Reason    string
	CreatedBy string
}

type AdjustStockResult struct {
	Movement       *model.StockMovement `json:"movement"`
	AggregateStock int                  `json:"aggregate_stock"`
}

type CreateVariantInput struct {
	ProductID     string
	Name          string
	Value         string
	SKU           string
	StockQuantity int
	PriceModifier float64
}

type MovementFilters struct {
	ProductID string
	VariantID string
	Page      int
	PageSize  int
}
