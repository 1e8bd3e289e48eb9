package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

// seedCatalog deja un producto con una variante y dos lotes: 5 unidades a $10
// (viejo) y 5 a $12 (nuevo), precio de venta $20.
func seedCatalog(t *testing.T, store *memory.Store) {
	t.Helper()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", Name: "Camiseta", SellingPrice: decimal.NewFromInt(20), Active: true,
	}))
	require.NoError(t, store.Variants().Create(&entity.Variant{
		ID: "var-1", ProductID: "p1", SKU: "CAM-M-AZUL",
	}))
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b-old", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 5, UnitCost: decimal.NewFromInt(10),
		PurchaseDate: time.Now().AddDate(0, 0, -10),
	}))
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID: "b-new", VariantID: "var-1", LocationID: "loc-1",
		QuantityRemaining: 5, UnitCost: decimal.NewFromInt(12),
		PurchaseDate: time.Now().AddDate(0, 0, -1),
	}))
}

func TestProcessSale_FIFOCompleta(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	uc := sales.NewSaleUseCase(store)

	resp, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 7}},
	})
	require.NoError(t, err)

	// 7 x $20 de ingreso; COGS FIFO 5x10 + 2x12 = 74.
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(140)))
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(74)))

	// El lote viejo quedó agotado, el nuevo en 3.
	old, err := store.Batches().GetByID("b-old")
	require.NoError(t, err)
	assert.Equal(t, 0, old.QuantityRemaining)
	newer, err := store.Batches().GetByID("b-new")
	require.NoError(t, err)
	assert.Equal(t, 3, newer.QuantityRemaining)

	// Orden con costos congelados por lote.
	order, err := store.Orders().GetByID(resp.OrderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Len(t, order.Items[0].Batches, 2)
	assert.True(t, order.Items[0].Batches[0].CostAtTime.Equal(decimal.NewFromInt(10)))

	// Factura sin pagar y asiento balanceado de cuatro piernas.
	invoice, err := store.Invoices().GetByID(resp.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusUnpaid, invoice.Status)

	entries, err := store.Journal().List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Balanced())
	assert.Len(t, entries[0].Items, 4)

	movements, err := store.Movements().ListByVariant("var-1")
	require.NoError(t, err)
	assert.Len(t, movements, 2)
}

func TestProcessSale_LIFO(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	uc := sales.NewSaleUseCase(store)

	resp, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		CostingMethod: "LIFO",
		Items:         []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 7}},
	})
	require.NoError(t, err)
	// LIFO: 5x12 + 2x10 = 80.
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(80)))
}

func TestProcessSale_SinStockNoDejaRastro(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	uc := sales.NewSaleUseCase(store)

	// Segunda línea pide más de lo que hay: la primera tampoco debe cometerse.
	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{
			{VariantID: "var-1", Quantity: 2},
			{VariantID: "var-1", Quantity: 50},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	old, err := store.Batches().GetByID("b-old")
	require.NoError(t, err)
	assert.Equal(t, 5, old.QuantityRemaining)
	orders, err := store.Orders().List()
	require.NoError(t, err)
	assert.Empty(t, orders)
	movements, err := store.Movements().List()
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestProcessSale_PrecioPorDefectoDelProducto(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	uc := sales.NewSaleUseCase(store)

	resp, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 1, Price: decimal.NewFromInt(15)}},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(15)), "precio acordado manda")

	resp2, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, resp2.TotalAmount.Equal(decimal.NewFromInt(20)), "precio cero usa el vigente")
}

func TestProcessSale_PeriodoBloqueado(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	require.NoError(t, store.Period().Set(repository.PeriodLock{Locked: true}))
	uc := sales.NewSaleUseCase(store)

	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrPeriodLocked)
}

func TestProcessReturn_RevierteExactoYAcumula(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	saleUC := sales.NewSaleUseCase(store)
	returnUC := sales.NewReturnUseCase(store)

	resp, err := saleUC.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 7}},
	})
	require.NoError(t, err)
	order, err := store.Orders().GetByID(resp.OrderID)
	require.NoError(t, err)
	itemID := order.Items[0].ID

	// Devolver 3: restaura primero el lote viejo (3 de las 5 extraídas),
	// reversión de COGS 3x10 = 30, de ingreso 3x20 = 60.
	ret, err := returnUC.ProcessReturn(context.Background(), resp.OrderID, dto.ProcessReturnRequest{
		Items: []dto.ReturnItemRequest{{OrderItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, ret.RevenueReversal.Equal(decimal.NewFromInt(60)))
	assert.True(t, ret.COGSReversal.Equal(decimal.NewFromInt(30)))

	old, err := store.Batches().GetByID("b-old")
	require.NoError(t, err)
	assert.Equal(t, 3, old.QuantityRemaining)

	// Devolver las 4 restantes: 2 al lote viejo (4x10... no: viejo aporta 2,
	// nuevo aporta 2) -> COGS 2x10 + 2x12 = 44.
	ret2, err := returnUC.ProcessReturn(context.Background(), resp.OrderID, dto.ProcessReturnRequest{
		Items: []dto.ReturnItemRequest{{OrderItemID: itemID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.True(t, ret2.COGSReversal.Equal(decimal.NewFromInt(44)))

	// Todo devuelto: un intento más es sobre-devolución.
	_, err = returnUC.ProcessReturn(context.Background(), resp.OrderID, dto.ProcessReturnRequest{
		Items: []dto.ReturnItemRequest{{OrderItemID: itemID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Stock completamente restaurado.
	old, _ = store.Batches().GetByID("b-old")
	newer, _ := store.Batches().GetByID("b-new")
	assert.Equal(t, 5, old.QuantityRemaining)
	assert.Equal(t, 5, newer.QuantityRemaining)
}

func TestProcessRefund_SoloAsientoDeCaja(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	saleUC := sales.NewSaleUseCase(store)
	returnUC := sales.NewReturnUseCase(store)

	resp, err := saleUC.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, returnUC.ProcessRefund(context.Background(), resp.OrderID,
		dto.RefundRequest{Amount: decimal.NewFromInt(10), Reason: "descuento posventa"}))

	// El reembolso no devuelve stock, solo mueve caja.
	old, err := store.Batches().GetByID("b-old")
	require.NoError(t, err)
	assert.Equal(t, 3, old.QuantityRemaining)

	entries, err := store.Journal().List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	refund := entries[1]
	assert.True(t, refund.Balanced())
	var cashCredit decimal.Decimal
	for _, it := range refund.Items {
		if it.AccountName == entity.AccountCash {
			cashCredit = cashCredit.Add(it.Credit)
		}
	}
	assert.True(t, cashCredit.Equal(decimal.NewFromInt(10)))

	err = returnUC.ProcessRefund(context.Background(), resp.OrderID, dto.RefundRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = returnUC.ProcessRefund(context.Background(), "no-existe", dto.RefundRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordPayment_AcumulaYBalancea(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	saleUC := sales.NewSaleUseCase(store)
	paymentUC := sales.NewPaymentUseCase(store)

	resp, err := saleUC.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleItemRequest{{VariantID: "var-1", Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, paymentUC.RecordPayment(context.Background(), resp.InvoiceID,
		dto.RecordPaymentRequest{Amount: decimal.NewFromInt(15), Method: "efectivo"}))
	invoice, err := store.Invoices().GetByID(resp.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, invoice.Status)

	require.NoError(t, paymentUC.RecordPayment(context.Background(), resp.InvoiceID,
		dto.RecordPaymentRequest{Amount: decimal.NewFromInt(25)}))
	invoice, err = store.Invoices().GetByID(resp.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, invoice.Status)

	payments, err := store.Invoices().ListPayments()
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	// Todos los asientos del libro quedan balanceados.
	entries, err := store.Journal().List()
	require.NoError(t, err)
	for _, e := range entries {
		assert.True(t, e.Balanced(), "asiento %s desbalanceado", e.Description)
	}

	// Un abono con monto no positivo se rechaza.
	err = paymentUC.RecordPayment(context.Background(), resp.InvoiceID,
		dto.RecordPaymentRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
