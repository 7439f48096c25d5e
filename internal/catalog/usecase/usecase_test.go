package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/catalog"
	"github.com/veloura/boutique-service/internal/catalog/dto"
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/variant"
)

type mockRepository struct {
	products map[string]*model.Product
	rows     map[string][]model.VariantRow
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		products: map[string]*model.Product{},
		rows:     map[string][]model.VariantRow{},
	}
}

func (m *mockRepository) Create(_ context.Context, p *model.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id string) (*model.Product, error) {
	return m.products[id], nil
}

func (m *mockRepository) FindBySlug(_ context.Context, slug string) (*model.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range m.products {
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *mockRepository) Update(_ context.Context, p *model.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id string) error {
	delete(m.products, id)
	return nil
}

func (m *mockRepository) IsSKUUnique(_ context.Context, sku, excludeID string) (bool, error) {
	for _, p := range m.products {
		if p.SKU == sku && p.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (m *mockRepository) IsSlugUnique(_ context.Context, slug, excludeID string) (bool, error) {
	for _, p := range m.products {
		if p.Slug == slug && p.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (m *mockRepository) VariantRows(_ context.Context, productID string) ([]model.VariantRow, error) {
	return m.rows[productID], nil
}

func newTestUseCase(repo catalog.Repository) catalog.UseCase {
	return NewCatalogUseCase(repo, nil, nil, zap.NewNop())
}

func row(name, value string, stock int, modifier float64) model.VariantRow {
	return model.VariantRow{
		Name:          name,
		Value:         value,
		StockQuantity: stock,
		PriceModifier: modifier,
	}
}

func seedDress(repo *mockRepository) *model.Product {
	sale := 120.0
	p := &model.Product{
		BaseModel:     model.BaseModel{ID: "p1"},
		SKU:           "DRS-001",
		Slug:          "robe-midi",
		Name:          "Robe Midi",
		Price:         150,
		SalePrice:     &sale,
		StockQuantity: 0,
		IsActive:      true,
	}
	repo.products[p.ID] = p
	repo.rows[p.ID] = []model.VariantRow{
		row("Couleur", "Noir", 5, 10),
		row("Couleur", "Blanc", 0, 0),
		row("Taille", "M", 5, 0),
		row("Taille", "S", 2, -5),
	}
	return p
}

func TestProductDetail(t *testing.T) {
	repo := newMockRepository()
	seedDress(repo)
	uc := newTestUseCase(repo)

	t.Run("full selection quotes price and stock", func(t *testing.T) {
		detail, err := uc.ProductDetail(context.Background(), "robe-midi",
			variant.Selection{Color: "Noir", Size: "M"})
		require.NoError(t, err)

		assert.Equal(t, []string{"Noir", "Blanc"}, detail.Index.Colors)
		assert.Equal(t, []string{"S", "M"}, detail.Index.Sizes)
		// Sale price wins, plus the Noir and M modifiers.
		assert.Equal(t, 130.0, detail.Quote.DisplayPrice)
		assert.Equal(t, 5, detail.Quote.EffectiveStock)
		assert.True(t, detail.Quote.Purchasable)
		assert.Equal(t, "p1:Noir:M", detail.CartKey)
	})

	t.Run("exhausted combination is not purchasable", func(t *testing.T) {
		detail, err := uc.ProductDetail(context.Background(), "robe-midi",
			variant.Selection{Color: "Blanc", Size: "M"})
		require.NoError(t, err)

		assert.Equal(t, 0, detail.Quote.EffectiveStock)
		assert.False(t, detail.Quote.Purchasable)
	})

	t.Run("incomplete selection is not purchasable", func(t *testing.T) {
		detail, err := uc.ProductDetail(context.Background(), "robe-midi",
			variant.Selection{Color: "Noir"})
		require.NoError(t, err)

		assert.False(t, detail.Quote.Purchasable)
		assert.Equal(t, "Noir", detail.Selection.Color)
		assert.Empty(t, detail.Selection.Size)
	})

	t.Run("single option axes auto-complete", func(t *testing.T) {
		repo := newMockRepository()
		p := &model.Product{
			BaseModel: model.BaseModel{ID: "p2"},
			SKU:       "SCRF-001",
			Slug:      "foulard-soie",
			Name:      "Foulard en Soie",
			Price:     80,
			IsActive:  true,
		}
		repo.products[p.ID] = p
		repo.rows[p.ID] = []model.VariantRow{
			row("Couleur", "Ivoire", 3, 0),
		}

		detail, err := newTestUseCase(repo).ProductDetail(context.Background(), "foulard-soie", variant.Selection{})
		require.NoError(t, err)

		assert.Equal(t, "Ivoire", detail.Selection.Color)
		assert.True(t, detail.Quote.Purchasable)
		assert.Equal(t, 3, detail.Quote.EffectiveStock)
	})

	t.Run("no variants falls back to product stock", func(t *testing.T) {
		repo := newMockRepository()
		p := &model.Product{
			BaseModel:     model.BaseModel{ID: "p3"},
			SKU:           "BLT-001",
			Slug:          "ceinture-cuir",
			Name:          "Ceinture en Cuir",
			Price:         45,
			StockQuantity: 7,
			IsActive:      true,
		}
		repo.products[p.ID] = p

		detail, err := newTestUseCase(repo).ProductDetail(context.Background(), "ceinture-cuir", variant.Selection{})
		require.NoError(t, err)

		assert.Equal(t, 7, detail.Quote.EffectiveStock)
		assert.True(t, detail.Quote.Purchasable)
		assert.Equal(t, 45.0, detail.Quote.DisplayPrice)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := uc.ProductDetail(context.Background(), "nope", variant.Selection{})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("inactive product is hidden", func(t *testing.T) {
		repo := newMockRepository()
		p := seedDress(repo)
		p.IsActive = false

		_, err := newTestUseCase(repo).ProductDetail(context.Background(), "robe-midi", variant.Selection{})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

func TestCreateProduct(t *testing.T) {
	repo := newMockRepository()
	uc := newTestUseCase(repo)

	created, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		SKU:   "TOP-001",
		Slug:  "top-lin",
		Name:  "Top en Lin",
		Price: 60,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)

	t.Run("duplicate SKU rejected", func(t *testing.T) {
		_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
			SKU:   "TOP-001",
			Slug:  "top-lin-2",
			Name:  "Top en Lin II",
			Price: 60,
		})
		assert.ErrorIs(t, err, catalog.ErrSKUExists)
	})

	t.Run("duplicate slug rejected", func(t *testing.T) {
		_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
			SKU:   "TOP-002",
			Slug:  "top-lin",
			Name:  "Top en Lin II",
			Price: 60,
		})
		assert.ErrorIs(t, err, catalog.ErrSlugExists)
	})
}

func TestUpdateProduct(t *testing.T) {
	repo := newMockRepository()
	p := seedDress(repo)
	uc := newTestUseCase(repo)

	updated, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:       p.ID,
		SKU:      p.SKU,
		Slug:     p.Slug,
		Name:     "Robe Midi Plissée",
		Price:    160,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Robe Midi Plissée", updated.Name)
	assert.Equal(t, 160.0, updated.Price)
	assert.Nil(t, updated.SalePrice)

	t.Run("unknown product", func(t *testing.T) {
		_, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{ID: "missing"})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

func TestDeleteProduct(t *testing.T) {
	repo := newMockRepository()
	p := seedDress(repo)
	uc := newTestUseCase(repo)

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))
	assert.NotContains(t, repo.products, p.ID)

	assert.ErrorIs(t, uc.DeleteProduct(context.Background(), p.ID), catalog.ErrProductNotFound)
}
