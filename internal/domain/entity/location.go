package entity

import "time"

// Tipos de ubicación física de inventario.
const (
	LocationTypeWarehouse = "warehouse"
	LocationTypeStore     = "store"
)

// Location representa una bodega o punto de venta. Lotes y movimientos
// referencian siempre una ubicación.
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // warehouse | store
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
