package repository

import "time"

// PeriodLock estado del candado del período fiscal. Mientras está activo,
// toda operación mutadora del ledger falla antes de tocar estado.
type PeriodLock struct {
	Locked   bool      `json:"locked"`
	Reason   string    `json:"reason,omitempty"`
	LockedBy string    `json:"locked_by,omitempty"`
	LockedAt time.Time `json:"locked_at,omitempty"`
}

// PeriodRepository puerto para el candado global de admisión.
type PeriodRepository interface {
	Get() (PeriodLock, error)
	Set(lock PeriodLock) error
}
