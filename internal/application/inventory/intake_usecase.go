// Package inventory implementa las operaciones físicas sobre el stock:
// ingreso de lotes, ajustes, transferencias y anulación de lotes.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// IntakeUseCase registra compras de stock como lotes nuevos.
type IntakeUseCase struct {
	txRunner ports.TxRunner
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(txRunner ports.TxRunner) *IntakeUseCase {
	return &IntakeUseCase{txRunner: txRunner}
}

// AddBatch crea el lote y su movimiento IN de auditoría. La compra no postea
// asiento contable: el costo de inventario se reconoce al vender (COGS) o al
// castigar (ajuste), no al ingresar.
func (uc *IntakeUseCase) AddBatch(ctx context.Context, in dto.IntakeRequest) (*entity.Batch, error) {
	if in.VariantID == "" || in.LocationID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	purchaseDate := now
	if in.PurchaseDate != nil {
		purchaseDate = *in.PurchaseDate
	}

	var created *entity.Batch
	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		if _, err := tx.Variants.GetByID(in.VariantID); err != nil {
			return err
		}
		if _, err := tx.Locations.GetByID(in.LocationID); err != nil {
			return err
		}

		batch := entity.Batch{
			ID:                uuid.New().String(),
			VariantID:         in.VariantID,
			LocationID:        in.LocationID,
			QuantityRemaining: in.Quantity,
			UnitCost:          in.UnitCost,
			PurchaseDate:      purchaseDate,
			CreatedAt:         now,
		}
		if err := tx.Batches.Create(&batch); err != nil {
			return err
		}
		if err := tx.Movements.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			VariantID:     in.VariantID,
			BatchID:       batch.ID,
			LocationID:    in.LocationID,
			Type:          entity.MovementTypeIN,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferenceIntake,
			ReferenceID:   batch.ID,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		created = &batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// VoidBatch anula un lote ya agotado para excluirlo de reportes. Con unidades
// restantes la anulación se rechaza: primero hay que ajustar a cero.
func (uc *IntakeUseCase) VoidBatch(ctx context.Context, batchID string) error {
	if batchID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		batch, err := tx.Batches.GetByID(batchID)
		if err != nil {
			return err
		}
		if batch.QuantityRemaining > 0 {
			return domain.ErrConflict
		}
		batch.Voided = true
		return tx.Batches.Update(batch)
	})
}
