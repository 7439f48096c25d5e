package variant

import "errors"

// Recoverable cart-add conditions. These are user-facing validation
// results, not faults.
var (
	ErrColorRequired = errors.New("please select a color")
	ErrSizeRequired  = errors.New("please select a size")
	ErrOutOfStock    = errors.New("this combination is out of stock")
)

type Selection struct {
	Color string `json:"color"`
	Size  string `json:"size"`
}

type Quote struct {
	EffectiveStock int     `json:"effective_stock"`
	DisplayPrice   float64 `json:"display_price"`
	Purchasable    bool    `json:"purchasable"`
}

// AutoSelect fills in a color or size that is the only option. A usability
// default, not a correctness requirement.
func (idx Index) AutoSelect(sel Selection) Selection {
	if sel.Color == "" && len(idx.Colors) == 1 {
		sel.Color = idx.Colors[0]
	}
	if sel.Size == "" && len(idx.Sizes) == 1 {
		sel.Size = idx.Sizes[0]
	}
	return sel
}

func (idx Index) comboStock(sel Selection) int {
	if !idx.HasColors() {
		if sel.Size == "" {
			return 0
		}
		return idx.StockByCombo[sel.Size]
	}
	if sel.Color == "" || sel.Size == "" {
		return 0
	}
	return idx.StockByCombo[ComboKey(true, sel.Color, sel.Size)]
}

// Resolve computes the effective stock, display price and purchasability of
// the current selection. productStock is the product's own denormalized
// counter; when it is more generous than the derived combination stock it
// wins, so a manual product-level top-up never blocks a sale.
func Resolve(idx Index, basePrice float64, productStock int, sel Selection) Quote {
	stock := idx.comboStock(sel)
	if productStock > stock {
		stock = productStock
	}

	price := basePrice + idx.PriceModifierByColor[sel.Color] + idx.PriceModifierBySize[sel.Size]

	purchasable := stock > 0 &&
		(!idx.HasColors() || sel.Color != "") &&
		(!idx.HasSizes() || sel.Size != "")

	return Quote{
		EffectiveStock: stock,
		DisplayPrice:   price,
		Purchasable:    purchasable,
	}
}

// CartAddError reports why a selection cannot be added to the cart, or nil
// when it can. Missing required axes take precedence over stock.
func (idx Index) CartAddError(sel Selection, quote Quote) error {
	if idx.HasColors() && sel.Color == "" {
		return ErrColorRequired
	}
	if idx.HasSizes() && sel.Size == "" {
		return ErrSizeRequired
	}
	if quote.EffectiveStock <= 0 {
		return ErrOutOfStock
	}
	return nil
}
