package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/boutique-service/internal/model"
)

func row(name, value, sku string, stock int, modifier float64) model.VariantRow {
	r := model.VariantRow{
		ProductID:     "prod-1",
		Name:          name,
		Value:         value,
		StockQuantity: stock,
		PriceModifier: modifier,
	}
	if sku != "" {
		r.SKU = &sku
	}
	return r
}

func TestParseEmptyInput(t *testing.T) {
	for _, rows := range [][]model.VariantRow{nil, {}} {
		idx := Parse(rows)
		assert.Empty(t, idx.Colors)
		assert.Empty(t, idx.Sizes)
		assert.Empty(t, idx.StockByCombo)
		assert.Empty(t, idx.PriceModifierByColor)
		assert.Empty(t, idx.PriceModifierBySize)
	}
}

func TestAxisRolePredicates(t *testing.T) {
	assert.True(t, IsColorAxis(" Couleurs "))
	assert.True(t, IsColorAxis("color"))
	assert.True(t, IsSizeAxis("TAILLE"))
	assert.True(t, IsSizeAxis("sizes"))
	assert.False(t, IsColorAxis("Finition"))
	assert.False(t, IsSizeAxis("Finition"))
}

func TestParseAxisDerivation(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Couleur", "Noir", "", 3, 0),
		row("Couleur", "Blanc", "", 2, 0),
		row("couleur", "Noir", "", 3, 0), // duplicate value, different casing of axis name
		row("Taille", "M", "", 4, 0),
		row("TAILLE ", "S", "", 1, 0),
		row("Material", "Silk", "", 9, 0), // inert axis
	})

	assert.Equal(t, []string{"Noir", "Blanc"}, idx.Colors, "colors keep encounter order")
	assert.Equal(t, []string{"S", "M"}, idx.Sizes)
	require.Len(t, idx.Warnings, 1)
	assert.Contains(t, idx.Warnings[0], "Material")
}

func TestParseInactiveRowsExcluded(t *testing.T) {
	inactive := false
	r := row("Couleur", "Rouge", "", 5, 0)
	r.IsActive = &inactive

	idx := Parse([]model.VariantRow{
		r,
		row("Couleur", "Noir", "", 3, 0),
		row("Taille", "M", "", 3, 0),
	})

	assert.Equal(t, []string{"Noir"}, idx.Colors)
}

func TestParseSizeCanonicalOrdering(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Taille", "L", "", 1, 0),
		row("Taille", "XS", "", 1, 0),
		row("Taille", "Custom", "", 1, 0),
		row("Taille", "M", "", 1, 0),
	})

	assert.Equal(t, []string{"XS", "M", "L", "Custom"}, idx.Sizes)
}

func TestParseNonCanonicalSizesAlphabetical(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Size", "Unique", "", 1, 0),
		row("Size", "38", "", 1, 0),
		row("Size", "XXL", "", 1, 0),
		row("Size", "36", "", 1, 0),
	})

	assert.Equal(t, []string{"XXL", "36", "38", "Unique"}, idx.Sizes)
}

func TestParseIndependentAxisFallbackNoColor(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Taille", "S", "", 2, 0),
		row("Taille", "M", "", 0, 0),
	})

	assert.Equal(t, map[string]int{"S": 2, "M": 0}, idx.StockByCombo)
}

func TestParseIndependentAxisFallbackMin(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Couleur", "Noir", "", 5, 0),
		row("Couleur", "Blanc", "", 0, 0),
		row("Taille", "S", "", 3, 0),
		row("Taille", "M", "", 7, 0),
	})

	assert.Equal(t, map[string]int{
		"Noir|S":  3,
		"Noir|M":  5,
		"Blanc|S": 0,
		"Blanc|M": 0,
	}, idx.StockByCombo)
}

func TestParseSKUGroupingWins(t *testing.T) {
	// Grouped rows must never fall back to min(): the SKU group's max is
	// authoritative even when an axis row sits stale at zero.
	idx := Parse([]model.VariantRow{
		row("Taille", "M", "A", 5, 0),
		row("Couleur", "Noir", "A", 0, 0),
	})

	assert.Equal(t, map[string]int{"Noir|M": 5}, idx.StockByCombo)
}

func TestParseEndToEndScenario(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Taille", "M", "A", 5, 0),
		row("Couleur", "Noir", "A", 5, 0),
		row("Taille", "M", "B", 0, 0),
		row("Couleur", "Blanc", "B", 0, 0),
	})

	assert.Equal(t, []string{"Noir", "Blanc"}, idx.Colors)
	assert.Equal(t, []string{"M"}, idx.Sizes)
	assert.Equal(t, map[string]int{"Noir|M": 5, "Blanc|M": 0}, idx.StockByCombo)

	quote := Resolve(idx, 100, 0, Selection{Color: "Blanc", Size: "M"})
	assert.Equal(t, 0, quote.EffectiveStock)
	assert.False(t, quote.Purchasable)
}

func TestParseInertRowRaisesSKUGroupStock(t *testing.T) {
	// A metadata row sharing the SKU still counts toward the group max.
	idx := Parse([]model.VariantRow{
		row("Taille", "M", "A", 2, 0),
		row("Couleur", "Noir", "A", 2, 0),
		row("Fit", "Oversize", "A", 6, 0),
	})

	assert.Equal(t, map[string]int{"Noir|M": 6}, idx.StockByCombo)
}

func TestParseSKUGroupNoColorAxis(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Taille", "S", "SKU-S", 4, 0),
		row("Taille", "M", "SKU-M", 1, 0),
	})

	assert.Empty(t, idx.Colors)
	assert.Equal(t, map[string]int{"S": 4, "M": 1}, idx.StockByCombo)
}

func TestParseMismatchedSKUGroupWarns(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Couleur", "Noir", "A", 3, 0),
		row("Taille", "M", "A", 3, 0),
		row("Couleur", "Blanc", "B", 2, 0), // no size row in group B
	})

	require.NotEmpty(t, idx.Warnings)
	assert.Contains(t, idx.Warnings[0], `"B"`)
}

func TestParsePriceModifiers(t *testing.T) {
	idx := Parse([]model.VariantRow{
		row("Couleur", "Noir", "", 1, 5),
		row("Taille", "S", "", 1, -3),
		row("Taille", "M", "", 1, 0),
	})

	assert.Equal(t, 5.0, idx.PriceModifierByColor["Noir"])
	assert.Equal(t, -3.0, idx.PriceModifierBySize["S"])
	assert.Equal(t, 0.0, idx.PriceModifierBySize["M"])
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "p1", CartKey("p1", "", ""))
	assert.Equal(t, "p1:Noir", CartKey("p1", "Noir", ""))
	assert.Equal(t, "p1:M", CartKey("p1", "", "M"))
	assert.Equal(t, "p1:Noir:M", CartKey("p1", "Noir", "M"))
}
