package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/usecase"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

func newProductUC(store *memory.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(store, store.Products(), store.Variants())
}

func TestCreateProduct_YVariantes(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Camiseta", Category: "ropa", SellingPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.True(t, p.Active)

	v, err := uc.CreateVariant(ctx, p.ID, dto.CreateVariantRequest{
		SKU: "CAM-M-AZUL", Size: "M", Color: "azul",
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, v.ProductID)

	// SKU repetido se rechaza aunque sea de otro producto.
	p2, err := uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Pantalón", SellingPrice: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	_, err = uc.CreateVariant(ctx, p2.ID, dto.CreateVariantRequest{SKU: "CAM-M-AZUL"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_NoTocaElPrecio(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Camiseta", SellingPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	name := "Camiseta básica"
	got, err := uc.UpdateProduct(ctx, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Camiseta básica", got.Name)
	assert.True(t, got.SellingPrice.Equal(decimal.NewFromInt(20)))
}

func TestUpdateSellingPrice_DejaHistorial(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Camiseta", SellingPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	got, err := uc.UpdateSellingPrice(ctx, p.ID, dto.UpdatePriceRequest{
		NewPrice: decimal.NewFromInt(25), ChangedBy: "dueno@tienda.co",
	})
	require.NoError(t, err)
	assert.True(t, got.SellingPrice.Equal(decimal.NewFromInt(25)))

	_, err = uc.UpdateSellingPrice(ctx, p.ID, dto.UpdatePriceRequest{NewPrice: decimal.NewFromInt(30)})
	require.NoError(t, err)

	changes, err := uc.ListPriceChanges(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.True(t, changes[0].OldPrice.Equal(decimal.NewFromInt(20)))
	assert.True(t, changes[0].NewPrice.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "dueno@tienda.co", changes[0].ChangedBy)
	assert.True(t, changes[1].OldPrice.Equal(decimal.NewFromInt(25)))

	_, err = uc.UpdateSellingPrice(ctx, p.ID, dto.UpdatePriceRequest{NewPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteProduct_ArrastraVariantes(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Camiseta", SellingPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	_, err = uc.CreateVariant(ctx, p.ID, dto.CreateVariantRequest{SKU: "CAM-M"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, p.ID))
	_, err = uc.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	variants, err := uc.ListVariants(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, variants)
}

func TestCatalogo_RespetaCierreDePeriodo(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Camiseta", SellingPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	require.NoError(t, store.Period().Set(repository.PeriodLock{Locked: true}))

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Pantalón", SellingPrice: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, domain.ErrPeriodLocked)
	_, err = uc.UpdateSellingPrice(ctx, p.ID, dto.UpdatePriceRequest{NewPrice: decimal.NewFromInt(25)})
	assert.ErrorIs(t, err, domain.ErrPeriodLocked)

	// Las lecturas siguen funcionando con el periodo cerrado.
	got, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Camiseta", got.Name)
}
