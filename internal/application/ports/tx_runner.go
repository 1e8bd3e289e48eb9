// Package ports define los puertos compartidos por los casos de uso.
package ports

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// LedgerTx agrupa los repositorios atados a una misma transacción del ledger.
// Dentro del callback de TxRunner.Run todas las mutaciones ven y modifican el
// mismo estado provisional; nada es visible para terceros hasta el commit.
type LedgerTx struct {
	Products     repository.ProductRepository
	Variants     repository.VariantRepository
	Batches      repository.BatchRepository
	Movements    repository.MovementRepository
	Orders       repository.OrderRepository
	Invoices     repository.InvoiceRepository
	Journal      repository.JournalRepository
	Reservations repository.ReservationRepository
	Locations    repository.LocationRepository
	Period       repository.PeriodRepository
}

// TxRunner ejecuta una función dentro de una transacción del ledger.
// Garantiza atomicidad: si fn retorna error no queda mutación parcial alguna.
// La implementación en memoria serializa todas las operaciones mutadoras
// (una sección crítica global).
type TxRunner interface {
	Run(ctx context.Context, fn func(tx LedgerTx) error) error
}

// ReportCache puerto de cacheo de reportes derivados (implementación Redis o Noop).
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}
