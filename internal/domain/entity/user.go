package entity

import "time"

// User cuenta de acceso del host HTTP. El motor no valida identidad: el
// colaborador de identidad entrega customer_id/customer_name ya resueltos.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
