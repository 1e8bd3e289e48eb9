package repository

import "github.com/tu-usuario/retail-ledger/internal/domain/entity"

// UserRepository puerto de persistencia para cuentas del host (login HTTP).
type UserRepository interface {
	Create(u *entity.User) error
	GetByEmail(email string) (*entity.User, error)
}
