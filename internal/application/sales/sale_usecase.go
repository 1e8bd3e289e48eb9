// Package sales contiene los casos de uso de venta, devolución, reembolso y
// abonos a factura. Cada operación corre como una sola transacción del ledger:
// o se comete todo (lotes, movimientos, orden, factura, asiento) o nada.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/costing"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// SaleUseCase procesa ventas multi-línea contra el ledger.
type SaleUseCase struct {
	txRunner ports.TxRunner
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner ports.TxRunner) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner}
}

// ProcessSale ejecuta una venta completa: por cada línea corre el asignador de
// lotes, descuenta QuantityRemaining de cada lote elegido, registra un
// movimiento OUT por lote y congela el costo unitario en OrderItemBatch.
// Al final crea una Order, una Invoice sin pagar y un asiento balanceado:
// débito Cuentas por Cobrar y COGS, crédito Ingresos e Inventario.
//
// Todo-o-nada: si a cualquier línea le falta stock disponible no queda
// ninguna mutación parcial (el motor jamás deja lotes a medio descontar).
func (uc *SaleUseCase) ProcessSale(ctx context.Context, in dto.ProcessSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	method := in.CostingMethod
	if method == "" {
		method = costing.MethodFIFO
	}
	for _, item := range in.Items {
		if item.VariantID == "" || item.Quantity <= 0 || item.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	orderID := uuid.New().String()
	var resp *dto.SaleResponse

	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}

		order := entity.Order{
			ID:         orderID,
			CustomerID: in.CustomerID,
			Date:       now,
			CreatedAt:  now,
		}
		var totalRevenue, totalCOGS decimal.Decimal

		for _, item := range in.Items {
			variant, err := tx.Variants.GetByID(item.VariantID)
			if err != nil {
				return err
			}
			price := item.Price
			if price.IsZero() {
				product, err := tx.Products.GetByID(variant.ProductID)
				if err != nil {
					return err
				}
				price = product.SellingPrice
			}

			batches, err := tx.Batches.ListByVariant(item.VariantID)
			if err != nil {
				return err
			}
			plan, err := costing.Allocate(batches, item.VariantID, in.PreferredLocationID, item.Quantity, method)
			if err != nil {
				return err
			}

			orderItem := entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     orderID,
				VariantID:   item.VariantID,
				Quantity:    item.Quantity,
				PriceAtTime: price,
			}
			var itemCOGS decimal.Decimal

			for _, alloc := range plan {
				batch := alloc.Batch
				batch.QuantityRemaining -= alloc.Quantity
				if err := tx.Batches.Update(&batch); err != nil {
					return err
				}
				if err := tx.Movements.Create(&entity.StockMovement{
					ID:            uuid.New().String(),
					VariantID:     item.VariantID,
					BatchID:       batch.ID,
					LocationID:    batch.LocationID,
					Type:          entity.MovementTypeOUT,
					Quantity:      alloc.Quantity,
					ReferenceType: entity.ReferenceOrder,
					ReferenceID:   orderID,
					CreatedAt:     now,
				}); err != nil {
					return err
				}
				// Costo congelado al momento de la venta; inmutable aunque el
				// lote cambie después.
				orderItem.Batches = append(orderItem.Batches, entity.OrderItemBatch{
					BatchID:    batch.ID,
					Quantity:   alloc.Quantity,
					CostAtTime: batch.UnitCost,
				})
				itemCOGS = itemCOGS.Add(batch.UnitCost.Mul(decimal.NewFromInt(int64(alloc.Quantity))))
			}

			orderItem.TotalCost = itemCOGS
			itemRevenue := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			totalRevenue = totalRevenue.Add(itemRevenue)
			totalCOGS = totalCOGS.Add(itemCOGS)
			order.Items = append(order.Items, orderItem)
		}

		order.TotalAmount = totalRevenue
		order.TotalCost = totalCOGS
		if err := tx.Orders.Create(&order); err != nil {
			return err
		}

		invoice := entity.Invoice{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			CustomerID:  in.CustomerID,
			TotalAmount: totalRevenue,
			PaidAmount:  decimal.Zero,
			Status:      entity.InvoiceStatusUnpaid,
			Date:        now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Invoices.Create(&invoice); err != nil {
			return err
		}

		if err := tx.Journal.Create(&entity.JournalEntry{
			ID:            uuid.New().String(),
			Date:          now,
			Description:   fmt.Sprintf("Venta %s", orderID),
			ReferenceType: entity.ReferenceOrder,
			ReferenceID:   orderID,
			CreatedAt:     now,
			Items: []entity.JournalEntryItem{
				entity.Debit(entity.AccountReceivable, totalRevenue),
				entity.Credit(entity.AccountRevenue, totalRevenue),
				entity.Debit(entity.AccountCOGS, totalCOGS),
				entity.Credit(entity.AccountInventory, totalCOGS),
			},
		}); err != nil {
			return err
		}

		resp = &dto.SaleResponse{
			OrderID:     orderID,
			InvoiceID:   invoice.ID,
			TotalAmount: totalRevenue,
			TotalCost:   totalCOGS,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
