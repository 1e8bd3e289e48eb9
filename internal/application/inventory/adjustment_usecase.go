package inventory

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

// AdjustmentUseCase corrige cantidades de lotes fuera del flujo de ventas:
// daño, pérdida, corrección de conteo y devolución a lote.
type AdjustmentUseCase struct {
	txRunner ports.TxRunner
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner ports.TxRunner) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner}
}

// AdjustStock aplica un ajuste manual sobre un lote.
//
// damage y loss reducen QuantityRemaining con tope en las unidades libres
// (las reservadas no se castigan) y postean el castigo contable: débito a la
// cuenta de gasto del tipo, crédito Inventario, por |delta efectivo| x costo
// unitario. correction y return aumentan sin asiento. El movimiento
// ADJUSTMENT registra el delta efectivamente aplicado, no el solicitado.
func (uc *AdjustmentUseCase) AdjustStock(ctx context.Context, in dto.AdjustStockRequest) (*entity.StockMovement, error) {
	if in.BatchID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidAdjustment
	}
	if in.Reason == "" {
		return nil, domain.ErrInvalidAdjustment
	}
	switch in.Type {
	case dto.AdjustmentDamage, dto.AdjustmentLoss, dto.AdjustmentCorrection, dto.AdjustmentReturn:
	default:
		return nil, domain.ErrInvalidAdjustment
	}

	now := time.Now()
	var movement *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		batch, err := tx.Batches.GetByID(in.BatchID)
		if err != nil {
			return err
		}

		delta := in.Quantity
		switch in.Type {
		case dto.AdjustmentDamage, dto.AdjustmentLoss:
			// El castigo solo toca unidades libres: QuantityReserved nunca
			// queda por encima de QuantityRemaining. Para castigar unidades
			// reservadas hay que cancelar la reserva primero.
			available := batch.QuantityRemaining - batch.QuantityReserved
			if available < 0 {
				available = 0
			}
			if delta > available {
				delta = available
			}
			batch.QuantityRemaining -= delta
		case dto.AdjustmentCorrection, dto.AdjustmentReturn:
			batch.QuantityRemaining += delta
		}
		if err := tx.Batches.Update(batch); err != nil {
			return err
		}

		mv := entity.StockMovement{
			ID:            uuid.New().String(),
			VariantID:     batch.VariantID,
			BatchID:       batch.ID,
			LocationID:    batch.LocationID,
			Type:          entity.MovementTypeADJUSTMENT,
			Quantity:      delta,
			ReferenceType: entity.ReferenceAdjustment,
			ReferenceID:   batch.ID,
			Notes:         fmt.Sprintf("%s: %s", in.Type, in.Reason),
			CreatedAt:     now,
		}
		if err := tx.Movements.Create(&mv); err != nil {
			return err
		}
		movement = &mv

		if (in.Type == dto.AdjustmentDamage || in.Type == dto.AdjustmentLoss) && delta > 0 {
			writeOff := batch.UnitCost.Mul(decimal.NewFromInt(int64(delta)))
			expense := entity.AccountDamageExpense
			if in.Type == dto.AdjustmentLoss {
				expense = entity.AccountLossExpense
			}
			return tx.Journal.Create(&entity.JournalEntry{
				ID:            uuid.New().String(),
				Date:          now,
				Description:   fmt.Sprintf("Ajuste %s de lote %s", in.Type, batch.ID),
				ReferenceType: entity.ReferenceAdjustment,
				ReferenceID:   mv.ID,
				CreatedAt:     now,
				Items: []entity.JournalEntryItem{
					entity.Debit(expense, writeOff),
					entity.Credit(entity.AccountInventory, writeOff),
				},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}
