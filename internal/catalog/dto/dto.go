package dto

import (
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/variant"
)

// ProductDetail is everything the product page needs in one read: the
// product, the parsed variant index and the quote for the (possibly
// auto-completed) selection.
type ProductDetail struct {
	Product   *model.Product    `json:"product"`
	Index     variant.Index     `json:"index"`
	Selection variant.Selection `json:"selection"`
	Quote     variant.Quote     `json:"quote"`
	CartKey   string            `json:"cart_key"`
}
