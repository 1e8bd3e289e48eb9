package ports

import "github.com/tu-usuario/retail-ledger/internal/domain"

// EnsurePeriodOpen es la compuerta de admisión global: toda operación
// mutadora la consulta antes de tocar estado y falla rápido si el período
// fiscal está bloqueado. Las lecturas no pasan por aquí.
func EnsurePeriodOpen(tx LedgerTx) error {
	lock, err := tx.Period.Get()
	if err != nil {
		return err
	}
	if lock.Locked {
		return domain.ErrPeriodLocked
	}
	return nil
}
