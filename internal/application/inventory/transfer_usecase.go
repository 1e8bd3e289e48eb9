package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/costing"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// TransferUseCase mueve stock entre ubicaciones preservando la identidad de
// costo de los lotes de origen.
type TransferUseCase struct {
	txRunner ports.TxRunner
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner ports.TxRunner) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner}
}

// TransferStock descuenta de lotes del origen (FIFO por fecha de compra) y
// crea en el destino un lote nuevo por cada lote de origen tocado, con el
// mismo costo unitario y la misma fecha de compra. Registra el par
// TRANSFER_OUT/TRANSFER_IN por lote. Sin asiento contable: el valor de
// inventario total no cambia.
func (uc *TransferUseCase) TransferStock(ctx context.Context, in dto.TransferStockRequest) error {
	if in.VariantID == "" || in.FromLocationID == "" || in.ToLocationID == "" || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if in.FromLocationID == in.ToLocationID {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		if _, err := tx.Locations.GetByID(in.FromLocationID); err != nil {
			return err
		}
		if _, err := tx.Locations.GetByID(in.ToLocationID); err != nil {
			return err
		}
		batches, err := tx.Batches.ListByVariant(in.VariantID)
		if err != nil {
			return err
		}
		plan, err := costing.AllocateAtLocation(batches, in.VariantID, in.FromLocationID, in.Quantity)
		if err != nil {
			return err
		}

		transferID := uuid.New().String()
		for _, alloc := range plan {
			origin := alloc.Batch
			origin.QuantityRemaining -= alloc.Quantity
			if err := tx.Batches.Update(&origin); err != nil {
				return err
			}

			dest := entity.Batch{
				ID:                uuid.New().String(),
				VariantID:         in.VariantID,
				LocationID:        in.ToLocationID,
				QuantityRemaining: alloc.Quantity,
				UnitCost:          origin.UnitCost,
				PurchaseDate:      origin.PurchaseDate,
				CreatedAt:         now,
			}
			if err := tx.Batches.Create(&dest); err != nil {
				return err
			}

			if err := tx.Movements.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				VariantID:     in.VariantID,
				BatchID:       origin.ID,
				LocationID:    in.FromLocationID,
				Type:          entity.MovementTypeTransferOut,
				Quantity:      alloc.Quantity,
				ReferenceType: entity.ReferenceTransfer,
				ReferenceID:   transferID,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
			if err := tx.Movements.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				VariantID:     in.VariantID,
				BatchID:       dest.ID,
				LocationID:    in.ToLocationID,
				Type:          entity.MovementTypeTransferIn,
				Quantity:      alloc.Quantity,
				ReferenceType: entity.ReferenceTransfer,
				ReferenceID:   transferID,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
