package analytics_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-ledger/internal/application/analytics"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

// mapCache implementa ports.ReportCache en memoria para observar hits y sets.
type mapCache struct {
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	c.sets++
	return nil
}

func (c *mapCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func newReporting(store *memory.Store, rc *mapCache) *analytics.ReportingUseCase {
	return analytics.NewReportingUseCase(
		store.Batches(), store.Variants(), store.Orders(), store.Invoices(),
		store.Reservations(), store.Period(), rc,
	)
}

func TestFinancialSummary_LedgerVacioDaCeros(t *testing.T) {
	store := memory.NewStore()
	uc := newReporting(store, newMapCache())

	got, err := uc.FinancialSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, got.InventoryValue.IsZero())
	assert.True(t, got.TotalRevenue.IsZero())
	assert.True(t, got.NetProfit.IsZero())
	assert.True(t, got.CashReceived.IsZero())
}

func TestFinancialSummary_DerivaDelLedger(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", Name: "Camiseta", SellingPrice: decimal.NewFromInt(20), Active: true,
	}))
	require.NoError(t, store.Variants().Create(&entity.Variant{ID: "var-1", ProductID: "p1", SKU: "CAM"}))
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b1", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 10, UnitCost: decimal.NewFromInt(10), PurchaseDate: time.Now(),
	}))

	saleUC := sales.NewSaleUseCase(store)
	resp, err := saleUC.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 4}},
	})
	require.NoError(t, err)
	require.NoError(t, sales.NewPaymentUseCase(store).RecordPayment(context.Background(),
		resp.InvoiceID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(30)}))

	rc := newMapCache()
	uc := newReporting(store, rc)
	got, err := uc.FinancialSummary(context.Background())
	require.NoError(t, err)

	// Quedan 6 unidades a $10; venta de 4 x $20 con COGS 40; caja 30.
	assert.True(t, got.InventoryValue.Equal(decimal.NewFromInt(60)))
	assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(80)))
	assert.True(t, got.TotalCOGS.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.NetProfit.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.CashReceived.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 1, rc.sets)

	// Segunda lectura sale del cache aunque el ledger cambie por debajo.
	_, err = saleUC.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 1}},
	})
	require.NoError(t, err)
	cached, err := uc.FinancialSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, cached.TotalRevenue.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, 1, rc.sets)

	// Invalidada la clave, se recalcula.
	require.NoError(t, rc.Invalidate(context.Background(), analytics.CacheKeyFinancialSummary))
	fresh, err := uc.FinancialSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, fresh.TotalRevenue.Equal(decimal.NewFromInt(100)))
}

func TestDashboardSummary_Conteos(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", Name: "Camiseta", SellingPrice: decimal.NewFromInt(20), Active: true,
	}))
	require.NoError(t, store.Variants().Create(&entity.Variant{ID: "var-1", ProductID: "p1", SKU: "CAM"}))
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b1", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 10, UnitCost: decimal.NewFromInt(10), PurchaseDate: time.Now(),
	}))
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b2", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 0, UnitCost: decimal.NewFromInt(10), PurchaseDate: time.Now(),
	}))
	require.NoError(t, store.Reservations().Create(&entity.Reservation{
		ID: "r1", CustomerName: "Ana", VariantID: "var-1", Quantity: 1,
		Status: entity.ReservationPending,
	}))
	require.NoError(t, store.Reservations().Create(&entity.Reservation{
		ID: "r2", CustomerName: "Luis", VariantID: "var-1", Quantity: 1,
		Status: entity.ReservationCancelled,
	}))

	_, err := sales.NewSaleUseCase(store).ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 2}},
	})
	require.NoError(t, err)

	uc := newReporting(store, newMapCache())
	got, err := uc.DashboardSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, got.OrderCount)
	assert.Equal(t, 1, got.OpenReservations, "las terminales no cuentan")
	assert.Equal(t, 1, got.UnpaidInvoices)
	assert.Equal(t, 1, got.ActiveVariantCount)
	assert.Equal(t, 1, got.NonEmptyBatchCount, "vacíos y anulados no cuentan")
	assert.False(t, got.PeriodLocked)
}
