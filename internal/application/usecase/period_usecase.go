package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// PeriodUseCase opera el candado del período fiscal. Lock y Unlock no pasan
// por la compuerta de admisión: desbloquear un período bloqueado debe ser
// siempre posible.
type PeriodUseCase struct {
	txRunner ports.TxRunner
	period   repository.PeriodRepository
}

// NewPeriodUseCase construye el caso de uso.
func NewPeriodUseCase(txRunner ports.TxRunner, period repository.PeriodRepository) *PeriodUseCase {
	return &PeriodUseCase{txRunner: txRunner, period: period}
}

// Lock activa el candado: a partir del commit toda mutación del ledger falla.
func (uc *PeriodUseCase) Lock(ctx context.Context, in dto.PeriodLockRequest) error {
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		return tx.Period.Set(repository.PeriodLock{
			Locked:   true,
			Reason:   in.Reason,
			LockedBy: in.LockedBy,
			LockedAt: time.Now(),
		})
	})
}

// Unlock desactiva el candado.
func (uc *PeriodUseCase) Unlock(ctx context.Context) error {
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		return tx.Period.Set(repository.PeriodLock{})
	})
}

// Status devuelve el estado vigente del candado.
func (uc *PeriodUseCase) Status(ctx context.Context) (repository.PeriodLock, error) {
	return uc.period.Get()
}
