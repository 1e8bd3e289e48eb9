package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/application/reservation"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

func seedCatalog(t *testing.T, store *memory.Store) {
	t.Helper()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", Name: "Camiseta", SellingPrice: decimal.NewFromInt(20), Active: true,
	}))
	require.NoError(t, store.Variants().Create(&entity.Variant{
		ID: "var-1", ProductID: "p1", SKU: "CAM-M-AZUL",
	}))
	require.NoError(t, store.Locations().Create(&entity.Location{
		ID: "loc-1", Name: "Bodega", Type: entity.LocationTypeWarehouse,
	}))
	require.NoError(t, store.Locations().Create(&entity.Location{
		ID: "loc-2", Name: "Tienda", Type: entity.LocationTypeStore,
	}))
}

func TestAddBatch_RegistraEntradaSinAsiento(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	uc := inventory.NewIntakeUseCase(store)

	b, err := uc.AddBatch(context.Background(), dto.IntakeRequest{
		VariantID: "var-1", LocationID: "loc-1", Quantity: 10, UnitCost: decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, b.QuantityRemaining)

	movements, err := store.Movements().ListByVariant("var-1")
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementTypeIN, movements[0].Type)
	assert.Equal(t, b.ID, movements[0].BatchID)

	// El costo se reconoce al vender o castigar, no al entrar.
	entries, err := store.Journal().List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddBatch_Invalidos(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	uc := inventory.NewIntakeUseCase(store)
	ctx := context.Background()

	_, err := uc.AddBatch(ctx, dto.IntakeRequest{VariantID: "var-1", LocationID: "loc-1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddBatch(ctx, dto.IntakeRequest{
		VariantID: "var-1", LocationID: "loc-1", Quantity: 1, UnitCost: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddBatch(ctx, dto.IntakeRequest{VariantID: "no-existe", LocationID: "loc-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVoidBatch_SoloVacios(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	uc := inventory.NewIntakeUseCase(store)

	b, err := uc.AddBatch(context.Background(), dto.IntakeRequest{
		VariantID: "var-1", LocationID: "loc-1", Quantity: 3, UnitCost: decimal.NewFromInt(8),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.VoidBatch(context.Background(), b.ID), domain.ErrConflict)

	got, err := store.Batches().GetByID(b.ID)
	require.NoError(t, err)
	got.QuantityRemaining = 0
	require.NoError(t, store.Batches().Update(got))
	require.NoError(t, uc.VoidBatch(context.Background(), b.ID))

	got, err = store.Batches().GetByID(b.ID)
	require.NoError(t, err)
	assert.True(t, got.Voided)
}

func TestAdjustStock_CastigoConTope(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b1", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 4, UnitCost: decimal.NewFromInt(10), PurchaseDate: time.Now(),
	}))
	uc := inventory.NewAdjustmentUseCase(store)

	// Pide bajar 9 pero solo hay 4: el delta efectivo se recorta.
	mov, err := uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		BatchID: "b1", Type: dto.AdjustmentDamage, Quantity: 9, Reason: "caja mojada",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, mov.Quantity)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, mov.Type)

	b, err := store.Batches().GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, 0, b.QuantityRemaining)

	// Castigo: débito Gasto por Daños / crédito Inventario a costo del lote.
	entries, err := store.Journal().List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Balanced())
	var damage decimal.Decimal
	for _, it := range entries[0].Items {
		if it.AccountName == entity.AccountDamageExpense {
			damage = damage.Add(it.Debit)
		}
	}
	assert.True(t, damage.Equal(decimal.NewFromInt(40)))
}

func TestAdjustStock_NoCastigaUnidadesReservadas(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b1", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 5, UnitCost: decimal.NewFromInt(10), PurchaseDate: time.Now(),
	}))

	// Reserva 3 de las 5: quedan 2 unidades libres.
	res, err := reservation.NewUseCase(store, store.Reservations()).Request(context.Background(),
		dto.RequestReservationRequest{CustomerName: "Ana", VariantID: "var-1", Quantity: 3})
	require.NoError(t, err)

	uc := inventory.NewAdjustmentUseCase(store)
	mov, err := uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		BatchID: "b1", Type: dto.AdjustmentDamage, Quantity: 4, Reason: "caja mojada",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, mov.Quantity, "el castigo se recorta a las unidades libres")

	b, err := store.Batches().GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, 3, b.QuantityRemaining)
	assert.Equal(t, 3, b.QuantityReserved)
	assert.LessOrEqual(t, b.QuantityReserved, b.QuantityRemaining)

	// El asiento castiga solo las 2 unidades efectivamente dañadas.
	entries, err := store.Journal().List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	var damage decimal.Decimal
	for _, it := range entries[0].Items {
		if it.AccountName == entity.AccountDamageExpense {
			damage = damage.Add(it.Debit)
		}
	}
	assert.True(t, damage.Equal(decimal.NewFromInt(20)))

	// La reserva sigue íntegra y puede confirmarse sobre stock real.
	got, err := store.Reservations().GetByID(res.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.PinnedQuantity())
}

func TestAdjustStock_CorreccionAumentaSinAsiento(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b1", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 4, UnitCost: decimal.NewFromInt(10), PurchaseDate: time.Now(),
	}))
	uc := inventory.NewAdjustmentUseCase(store)

	_, err := uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		BatchID: "b1", Type: dto.AdjustmentCorrection, Quantity: 3, Reason: "conteo físico",
	})
	require.NoError(t, err)

	b, err := store.Batches().GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, 7, b.QuantityRemaining)

	entries, err := store.Journal().List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAdjustStock_EntradasInvalidas(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	uc := inventory.NewAdjustmentUseCase(store)
	ctx := context.Background()

	cases := []dto.AdjustStockRequest{
		{BatchID: "", Type: dto.AdjustmentDamage, Quantity: 1, Reason: "x"},
		{BatchID: "b1", Type: dto.AdjustmentDamage, Quantity: 0, Reason: "x"},
		{BatchID: "b1", Type: dto.AdjustmentDamage, Quantity: 1, Reason: ""},
		{BatchID: "b1", Type: "merma", Quantity: 1, Reason: "x"},
	}
	for _, in := range cases {
		_, err := uc.AdjustStock(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)
	}
}

func TestTransferStock_ConservaCostoYFecha(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	purchased := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b1", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 10, UnitCost: decimal.NewFromInt(10), PurchaseDate: purchased,
	}))
	uc := inventory.NewTransferUseCase(store)

	require.NoError(t, uc.TransferStock(context.Background(), dto.TransferStockRequest{
		VariantID: "var-1", FromLocationID: "loc-1", ToLocationID: "loc-2", Quantity: 6,
	}))

	origin, err := store.Batches().GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, 4, origin.QuantityRemaining)

	batches, err := store.Batches().ListByVariant("var-1")
	require.NoError(t, err)
	require.Len(t, batches, 2)
	var dest *entity.Batch
	for i := range batches {
		if batches[i].LocationID == "loc-2" {
			dest = &batches[i]
		}
	}
	require.NotNil(t, dest)
	assert.Equal(t, 6, dest.QuantityRemaining)
	assert.True(t, dest.UnitCost.Equal(decimal.NewFromInt(10)), "el costo viaja con el stock")
	assert.True(t, dest.PurchaseDate.Equal(purchased), "la antigüedad FIFO se conserva")

	// Par TRANSFER_OUT / TRANSFER_IN con la misma referencia; sin asiento.
	movements, err := store.Movements().ListByVariant("var-1")
	require.NoError(t, err)
	require.Len(t, movements, 2)
	var out, in *entity.StockMovement
	for i := range movements {
		switch movements[i].Type {
		case entity.MovementTypeTransferOut:
			out = &movements[i]
		case entity.MovementTypeTransferIn:
			in = &movements[i]
		}
	}
	require.NotNil(t, out)
	require.NotNil(t, in)
	assert.Equal(t, out.ReferenceID, in.ReferenceID)

	entries, err := store.Journal().List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTransferStock_MismaUbicacionYFaltante(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b1", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 2, UnitCost: decimal.NewFromInt(10), PurchaseDate: time.Now(),
	}))
	uc := inventory.NewTransferUseCase(store)
	ctx := context.Background()

	err := uc.TransferStock(ctx, dto.TransferStockRequest{
		VariantID: "var-1", FromLocationID: "loc-1", ToLocationID: "loc-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.TransferStock(ctx, dto.TransferStockRequest{
		VariantID: "var-1", FromLocationID: "loc-1", ToLocationID: "loc-2", Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El faltante no deja mutaciones a medias.
	b, _ := store.Batches().GetByID("b1")
	assert.Equal(t, 2, b.QuantityRemaining)
	movements, _ := store.Movements().List()
	assert.Empty(t, movements)
}

func TestStockLevels_AgregaPorVarianteYUbicacion(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b1", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 4, UnitCost: decimal.NewFromInt(10), PurchaseDate: time.Now(),
	}))
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b2", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 3, UnitCost: decimal.NewFromInt(12), PurchaseDate: time.Now(),
	}))
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b3", VariantID: "var-1", LocationID: "loc-2",
		QuantityRemaining: 5, UnitCost: decimal.NewFromInt(12), PurchaseDate: time.Now(),
	}))
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b4", VariantID: "var-1", LocationID: "loc-2", Voided: true,
		QuantityRemaining: 9, UnitCost: decimal.NewFromInt(12), PurchaseDate: time.Now(),
	}))

	q := inventory.NewStockQuery(store.Batches(), store.Variants(), store.Movements())
	levels, err := q.StockLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 2)

	byLoc := map[string]dto.StockLevelDTO{}
	for _, l := range levels {
		byLoc[l.LocationID] = l
	}
	assert.Equal(t, 7, byLoc["loc-1"].Remaining)
	assert.Equal(t, 5, byLoc["loc-2"].Remaining, "los lotes anulados no cuentan")
	assert.Equal(t, "CAM-M-AZUL", byLoc["loc-1"].SKU)
}
