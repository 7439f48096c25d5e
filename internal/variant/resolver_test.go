package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veloura/boutique-service/internal/model"
)

func testIndex() Index {
	return Parse([]model.VariantRow{
		row("Couleur", "Noir", "", 4, 5),
		row("Couleur", "Blanc", "", 0, 0),
		row("Taille", "S", "", 3, -3),
		row("Taille", "M", "", 6, 0),
	})
}

func TestResolveDisplayPrice(t *testing.T) {
	idx := testIndex()

	quote := Resolve(idx, 100, 0, Selection{Color: "Noir", Size: "S"})
	assert.Equal(t, 102.0, quote.DisplayPrice)

	t.Run("missing modifiers default to zero", func(t *testing.T) {
		quote := Resolve(idx, 100, 0, Selection{})
		assert.Equal(t, 100.0, quote.DisplayPrice)
	})
}

func TestResolvePurchasableRequiresSelection(t *testing.T) {
	idx := testIndex()

	// Stock exists for Noir/S, but purchasable stays false while a
	// required axis is unselected.
	quote := Resolve(idx, 100, 0, Selection{Size: "S"})
	assert.False(t, quote.Purchasable)

	quote = Resolve(idx, 100, 0, Selection{Color: "Noir"})
	assert.False(t, quote.Purchasable)

	quote = Resolve(idx, 100, 0, Selection{Color: "Noir", Size: "S"})
	assert.True(t, quote.Purchasable)
	assert.Equal(t, 3, quote.EffectiveStock)
}

func TestResolveProductStockOverride(t *testing.T) {
	idx := testIndex()

	// The denormalized product counter wins when it is more generous than
	// the derived combination stock.
	quote := Resolve(idx, 100, 10, Selection{Color: "Blanc", Size: "S"})
	assert.Equal(t, 10, quote.EffectiveStock)
	assert.True(t, quote.Purchasable)

	quote = Resolve(idx, 100, 1, Selection{Color: "Noir", Size: "M"})
	assert.Equal(t, 4, quote.EffectiveStock)
}

func TestResolveNoColorAxis(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Taille", "S", "", 2, 0),
		row("Taille", "M", "", 0, 0),
	})

	quote := Resolve(idx, 80, 0, Selection{Size: "S"})
	assert.True(t, quote.Purchasable)
	assert.Equal(t, 2, quote.EffectiveStock)

	quote = Resolve(idx, 80, 0, Selection{Size: "M"})
	assert.False(t, quote.Purchasable)

	quote = Resolve(idx, 80, 0, Selection{})
	assert.False(t, quote.Purchasable)
}

func TestResolveNoVariantsAtAll(t *testing.T) {
	idx := Parse(nil)

	quote := Resolve(idx, 50, 7, Selection{})
	assert.True(t, quote.Purchasable)
	assert.Equal(t, 7, quote.EffectiveStock)
	assert.Equal(t, 50.0, quote.DisplayPrice)
}

func TestAutoSelectSingleOptions(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Couleur", "Noir", "", 3, 0),
		row("Taille", "S", "", 3, 0),
		row("Taille", "M", "", 3, 0),
	})

	sel := idx.AutoSelect(Selection{})
	assert.Equal(t, "Noir", sel.Color)
	assert.Empty(t, sel.Size, "two sizes means no auto-selection")

	sel = idx.AutoSelect(Selection{Color: "Blanc", Size: "M"})
	assert.Equal(t, "Blanc", sel.Color, "explicit selection is never overridden")
}

func TestCartAddError(t *testing.T) {
	idx := testIndex()

	sel := Selection{Size: "S"}
	assert.ErrorIs(t, idx.CartAddError(sel, Resolve(idx, 100, 0, sel)), ErrColorRequired)

	sel = Selection{Color: "Noir"}
	assert.ErrorIs(t, idx.CartAddError(sel, Resolve(idx, 100, 0, sel)), ErrSizeRequired)

	sel = Selection{Color: "Blanc", Size: "S"}
	assert.ErrorIs(t, idx.CartAddError(sel, Resolve(idx, 100, 0, sel)), ErrOutOfStock)

	sel = Selection{Color: "Noir", Size: "M"}
	assert.NoError(t, idx.CartAddError(sel, Resolve(idx, 100, 0, sel)))
}
