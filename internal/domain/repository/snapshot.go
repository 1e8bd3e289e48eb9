package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// SnapshotSchemaVersion versión del documento de foto del ledger.
const SnapshotSchemaVersion = 1

// LedgerSnapshot es la foto serializable del estado completo del motor.
// El colaborador de persistencia la guarda y la recarga al arrancar; los ids
// son estables entre guardar y cargar.
type LedgerSnapshot struct {
	SchemaVersion int       `json:"schema_version"`
	TakenAt       time.Time `json:"taken_at"`

	Products     []entity.Product       `json:"products"`
	Variants     []entity.Variant       `json:"variants"`
	Batches      []entity.Batch         `json:"batches"`
	Orders       []entity.Order         `json:"orders"`
	Invoices     []entity.Invoice       `json:"invoices"`
	Reservations []entity.Reservation   `json:"reservations"`
	Locations    []entity.Location      `json:"locations"`
	Users        []entity.User          `json:"users"`
	Movements    []entity.StockMovement `json:"movements"`
	Journal      []entity.JournalEntry  `json:"journal"`
	Payments     []entity.Payment       `json:"payments"`
	PriceChanges []entity.PriceChange   `json:"price_changes"`

	Period PeriodLock `json:"period"`
}

// SnapshotStore puerto del colaborador de persistencia. Load retorna
// (nil, nil) cuando todavía no existe ninguna foto guardada.
type SnapshotStore interface {
	Save(ctx context.Context, snap *LedgerSnapshot) error
	Load(ctx context.Context) (*LedgerSnapshot, error)
}
