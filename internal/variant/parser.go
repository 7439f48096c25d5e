package variant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veloura/boutique-service/internal/model"
)

// Axis roles. Row names are free text entered in the admin, historically in
// both English and French, so both vocabularies are recognised. Anything
// else is an inert axis: it contributes to no axis but its stock still
// counts toward a SKU group.
type axisRole int

const (
	otherAxis axisRole = iota
	colorAxis
	sizeAxis
)

var colorAxisNames = map[string]struct{}{
	"color": {}, "couleur": {}, "colorway": {}, "couleurs": {},
}

var sizeAxisNames = map[string]struct{}{
	"size": {}, "taille": {}, "sizes": {}, "tailles": {},
}

func roleOf(name string) axisRole {
	n := strings.ToLower(strings.TrimSpace(name))
	if _, ok := colorAxisNames[n]; ok {
		return colorAxis
	}
	if _, ok := sizeAxisNames[n]; ok {
		return sizeAxis
	}
	return otherAxis
}

// IsColorAxis reports whether a free-text row name is a color axis, for
// callers that match raw rows outside a parsed index.
func IsColorAxis(name string) bool { return roleOf(name) == colorAxis }

// IsSizeAxis is the size-axis counterpart of IsColorAxis.
func IsSizeAxis(name string) bool { return roleOf(name) == sizeAxis }

// canonicalSizeRank orders the house size run; sizes outside it sort after,
// alphabetically.
var canonicalSizeRank = map[string]int{
	"XS": 0, "S": 1, "M": 2, "L": 3, "XL": 4, "XXL": 5,
}

// Index is the ephemeral, per-read view of a product's variant rows. It is
// rebuilt on every load and must never be cached across writes to the rows.
type Index struct {
	Colors []string
	Sizes  []string

	// StockByCombo is keyed by the size alone when the product has no color
	// axis, otherwise by "color|size".
	StockByCombo map[string]int

	PriceModifierByColor map[string]float64
	PriceModifierBySize  map[string]float64

	// Warnings are data-inconsistency signals (mismatched SKU groups,
	// unrecognised axis names). They never block parsing; callers log them
	// for manual correction.
	Warnings []string
}

func (idx Index) HasColors() bool { return len(idx.Colors) > 0 }
func (idx Index) HasSizes() bool  { return len(idx.Sizes) > 0 }

// ComboKey builds a stock lookup key: the size alone for products without a
// color axis, "color|size" otherwise.
func ComboKey(hasColors bool, color, size string) string {
	if !hasColors {
		return size
	}
	return color + "|" + size
}

// CartKey is the composite line-item identity the cart collaborator keys
// on: productID plus optional ":color" and ":size" suffixes.
func CartKey(productID, color, size string) string {
	key := productID
	if color != "" {
		key += ":" + color
	}
	if size != "" {
		key += ":" + size
	}
	return key
}

// Parse turns a flat list of variant rows into normalized axes, a stock
// lookup per combination and price-modifier lookups per axis value. Pure;
// nil or empty input yields the zero-value index, never an error.
func Parse(rows []model.VariantRow) Index {
	idx := Index{
		StockByCombo:         map[string]int{},
		PriceModifierByColor: map[string]float64{},
		PriceModifierBySize:  map[string]float64{},
	}
	if len(rows) == 0 {
		return idx
	}

	active := make([]model.VariantRow, 0, len(rows))
	for _, r := range rows {
		if r.Active() {
			active = append(active, r)
		}
	}

	// Axes and price modifiers. Colors keep encounter order; sizes are
	// sorted canonically below.
	seenColor := map[string]struct{}{}
	seenSize := map[string]struct{}{}
	colorStock := map[string]int{}
	sizeStock := map[string]int{}
	var sizeValues []string

	for _, r := range active {
		switch roleOf(r.Name) {
		case colorAxis:
			if _, ok := seenColor[r.Value]; !ok {
				seenColor[r.Value] = struct{}{}
				idx.Colors = append(idx.Colors, r.Value)
				colorStock[r.Value] = r.StockQuantity
			}
			idx.PriceModifierByColor[r.Value] = r.PriceModifier
		case sizeAxis:
			if _, ok := seenSize[r.Value]; !ok {
				seenSize[r.Value] = struct{}{}
				sizeValues = append(sizeValues, r.Value)
				sizeStock[r.Value] = r.StockQuantity
			}
			idx.PriceModifierBySize[r.Value] = r.PriceModifier
		default:
			if strings.TrimSpace(r.Name) != "" {
				idx.Warnings = append(idx.Warnings,
					fmt.Sprintf("unrecognized variant axis %q (value %q)", r.Name, r.Value))
			}
		}
	}
	idx.Sizes = sortSizes(sizeValues)

	// Stock resolution. SKU groups are authoritative when any exist: rows
	// sharing a SKU describe one physical unit and the highest recorded
	// number wins, which guards against one side sitting stale at zero.
	type skuGroup struct {
		color, size string
		stock       int
		colorRows   int
		sizeRows    int
	}
	groups := map[string]*skuGroup{}
	var groupOrder []string

	for _, r := range active {
		sku := r.SKUValue()
		if sku == "" {
			continue
		}
		g, ok := groups[sku]
		if !ok {
			g = &skuGroup{stock: r.StockQuantity}
			groups[sku] = g
			groupOrder = append(groupOrder, sku)
		} else if r.StockQuantity > g.stock {
			g.stock = r.StockQuantity
		}
		switch roleOf(r.Name) {
		case colorAxis:
			if g.color == "" {
				g.color = r.Value
			}
			g.colorRows++
		case sizeAxis:
			if g.size == "" {
				g.size = r.Value
			}
			g.sizeRows++
		}
	}

	if len(groups) > 0 {
		for _, sku := range groupOrder {
			g := groups[sku]
			if g.colorRows > 1 || g.sizeRows > 1 {
				idx.Warnings = append(idx.Warnings,
					fmt.Sprintf("sku %q groups %d color and %d size rows", sku, g.colorRows, g.sizeRows))
			}
			if idx.HasColors() && (g.color == "" || g.size == "") {
				idx.Warnings = append(idx.Warnings,
					fmt.Sprintf("sku %q is missing a color or size row", sku))
			}
			key := ComboKey(idx.HasColors(), g.color, g.size)
			if existing, ok := idx.StockByCombo[key]; !ok || g.stock > existing {
				idx.StockByCombo[key] = g.stock
			}
		}
		return idx
	}

	// No SKU grouping at all: fall back to independent axes. Without a
	// color axis each size carries its own stock; with one, a combination
	// cannot have more stock than either of its constituent rows.
	if !idx.HasColors() {
		for _, size := range idx.Sizes {
			idx.StockByCombo[size] = clampStock(sizeStock[size])
		}
		return idx
	}
	for _, color := range idx.Colors {
		for _, size := range idx.Sizes {
			stock := colorStock[color]
			if sizeStock[size] < stock {
				stock = sizeStock[size]
			}
			idx.StockByCombo[ComboKey(true, color, size)] = clampStock(stock)
		}
	}
	return idx
}

func clampStock(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// sortSizes orders canonical sizes (XS..XXL) first, then everything else
// alphabetically.
func sortSizes(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, iok := canonicalSizeRank[sorted[i]]
		rj, jok := canonicalSizeRank[sorted[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return sorted[i] < sorted[j]
		}
	})
	return sorted
}
