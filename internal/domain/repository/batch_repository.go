package repository

import "github.com/tu-usuario/retail-ledger/internal/domain/entity"

// BatchRepository puerto de persistencia para lotes de stock. La mutación de
// cantidades pasa siempre por Update dentro de la operación dueña; ningún
// colaborador externo toca QuantityRemaining/QuantityReserved directamente.
type BatchRepository interface {
	Create(b *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	ListByVariant(variantID string) ([]entity.Batch, error)
	List() ([]entity.Batch, error)
	Update(b *entity.Batch) error
}

// MovementRepository puerto para la pista de auditoría de movimientos físicos.
// Solo inserta; los movimientos nunca se modifican ni borran.
type MovementRepository interface {
	Create(m *entity.StockMovement) error
	ListByVariant(variantID string) ([]entity.StockMovement, error)
	List() ([]entity.StockMovement, error)
}
