package inventory

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// StockQuery consulta niveles de stock y movimientos sobre los repos vivos
// (solo lectura, fuera de transacción).
type StockQuery struct {
	batches   repository.BatchRepository
	variants  repository.VariantRepository
	movements repository.MovementRepository
}

// NewStockQuery construye la consulta.
func NewStockQuery(batches repository.BatchRepository, variants repository.VariantRepository, movements repository.MovementRepository) *StockQuery {
	return &StockQuery{batches: batches, variants: variants, movements: movements}
}

// StockLevels agrega el stock vigente por (variante, ubicación) sobre los
// lotes no anulados.
func (q *StockQuery) StockLevels(ctx context.Context) ([]dto.StockLevelDTO, error) {
	batches, err := q.batches.List()
	if err != nil {
		return nil, err
	}

	type key struct{ variantID, locationID string }
	agg := make(map[key]*dto.StockLevelDTO)
	var order []key
	for _, b := range batches {
		if b.Voided {
			continue
		}
		k := key{b.VariantID, b.LocationID}
		level, ok := agg[k]
		if !ok {
			level = &dto.StockLevelDTO{VariantID: b.VariantID, LocationID: b.LocationID}
			agg[k] = level
			order = append(order, k)
		}
		level.Remaining += b.QuantityRemaining
		level.Reserved += b.QuantityReserved
		level.Available += b.Available()
	}

	levels := make([]dto.StockLevelDTO, 0, len(order))
	for _, k := range order {
		level := agg[k]
		if v, err := q.variants.GetByID(k.variantID); err == nil {
			level.SKU = v.SKU
		}
		levels = append(levels, *level)
	}
	return levels, nil
}

// MovementHistory devuelve la pista de auditoría de una variante (o de todas
// con variantID vacío), ya ordenada por fecha por el repositorio.
func (q *StockQuery) MovementHistory(ctx context.Context, variantID string) ([]entity.StockMovement, error) {
	if variantID == "" {
		return q.movements.List()
	}
	return q.movements.ListByVariant(variantID)
}

// ListBatches devuelve los lotes de una variante, anulados incluidos.
func (q *StockQuery) ListBatches(ctx context.Context, variantID string) ([]entity.Batch, error) {
	return q.batches.ListByVariant(variantID)
}
