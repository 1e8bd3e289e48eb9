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
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// ReturnUseCase revierte el efecto físico y contable de una venta previa,
// por cantidades parciales o totales.
type ReturnUseCase struct {
	txRunner ports.TxRunner
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(txRunner ports.TxRunner) *ReturnUseCase {
	return &ReturnUseCase{txRunner: txRunner}
}

// ProcessReturn restaura stock en los lotes de origen de cada línea devuelta,
// en el orden en que fueron registrados, y postea un asiento que revierte
// tanto Ingresos/Cuentas por Cobrar como COGS/Inventario. La reversión de
// COGS se calcula con el costo congelado de cada lote (CostAtTime), nunca con
// el costo actual.
func (uc *ReturnUseCase) ProcessReturn(ctx context.Context, orderID string, in dto.ProcessReturnRequest) (*dto.ReturnResponse, error) {
	if orderID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.OrderItemID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	var resp *dto.ReturnResponse

	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}

		order, err := tx.Orders.GetByID(orderID)
		if err != nil {
			return err
		}

		var revenueReversal, cogsReversal decimal.Decimal

		for _, ret := range in.Items {
			idx := -1
			for i := range order.Items {
				if order.Items[i].ID == ret.OrderItemID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return domain.ErrNotFound
			}
			item := &order.Items[idx]
			if ret.Quantity > item.Quantity-item.ReturnedQty {
				return domain.ErrInvalidInput
			}

			// Restaurar lote por lote, en el orden original de extracción.
			remaining := ret.Quantity
			for i := range item.Batches {
				if remaining == 0 {
					break
				}
				ib := &item.Batches[i]
				restorable := ib.Quantity - ib.ReturnedQty
				if restorable <= 0 {
					continue
				}
				restore := restorable
				if restore > remaining {
					restore = remaining
				}

				batch, err := tx.Batches.GetByID(ib.BatchID)
				if err != nil {
					return err
				}
				batch.QuantityRemaining += restore
				if err := tx.Batches.Update(batch); err != nil {
					return err
				}
				if err := tx.Movements.Create(&entity.StockMovement{
					ID:            uuid.New().String(),
					VariantID:     item.VariantID,
					BatchID:       batch.ID,
					LocationID:    batch.LocationID,
					Type:          entity.MovementTypeRETURN,
					Quantity:      restore,
					ReferenceType: entity.ReferenceReturn,
					ReferenceID:   orderID,
					Notes:         in.Reason,
					CreatedAt:     now,
				}); err != nil {
					return err
				}

				ib.ReturnedQty += restore
				cogsReversal = cogsReversal.Add(ib.CostAtTime.Mul(decimal.NewFromInt(int64(restore))))
				remaining -= restore
			}

			item.ReturnedQty += ret.Quantity
			revenueReversal = revenueReversal.Add(item.PriceAtTime.Mul(decimal.NewFromInt(int64(ret.Quantity))))
		}

		if err := tx.Orders.Update(order); err != nil {
			return err
		}

		if err := tx.Journal.Create(&entity.JournalEntry{
			ID:            uuid.New().String(),
			Date:          now,
			Description:   fmt.Sprintf("Devolución sobre venta %s", orderID),
			ReferenceType: entity.ReferenceReturn,
			ReferenceID:   orderID,
			CreatedAt:     now,
			Items: []entity.JournalEntryItem{
				entity.Debit(entity.AccountRevenue, revenueReversal),
				entity.Credit(entity.AccountReceivable, revenueReversal),
				entity.Debit(entity.AccountInventory, cogsReversal),
				entity.Credit(entity.AccountCOGS, cogsReversal),
			},
		}); err != nil {
			return err
		}

		resp = &dto.ReturnResponse{
			OrderID:         orderID,
			RevenueReversal: revenueReversal,
			COGSReversal:    cogsReversal,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ProcessRefund registra una salida de caja por un reembolso: débito Cuentas
// por Cobrar, crédito Caja. No toca stock físico (eso es ProcessReturn).
func (uc *ReturnUseCase) ProcessRefund(ctx context.Context, orderID string, in dto.RefundRequest) error {
	if orderID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		if _, err := tx.Orders.GetByID(orderID); err != nil {
			return err
		}
		return tx.Journal.Create(&entity.JournalEntry{
			ID:            uuid.New().String(),
			Date:          now,
			Description:   fmt.Sprintf("Reembolso sobre venta %s", orderID),
			ReferenceType: entity.ReferenceReturn,
			ReferenceID:   orderID,
			CreatedAt:     now,
			Items: []entity.JournalEntryItem{
				entity.Debit(entity.AccountReceivable, in.Amount),
				entity.Credit(entity.AccountCash, in.Amount),
			},
		})
	})
}
