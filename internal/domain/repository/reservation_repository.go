package repository

import (
	"time"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// ReservationRepository puerto de persistencia para reservas blandas.
type ReservationRepository interface {
	Create(r *entity.Reservation) error
	GetByID(id string) (*entity.Reservation, error)
	List() ([]entity.Reservation, error)
	ListByStatus(status string) ([]entity.Reservation, error)
	ListExpiredBefore(now time.Time) ([]entity.Reservation, error)
	Update(r *entity.Reservation) error
}

// LocationRepository puerto de persistencia para bodegas y puntos de venta.
type LocationRepository interface {
	Create(l *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List() ([]entity.Location, error)
	Update(l *entity.Location) error
}
