package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo. El precio de venta es único y
// compartido por todas sus variantes; se modifica solo con la operación
// explícita de cambio de precio, nunca como efecto secundario de una entrada
// de stock.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Sizes        []string        `json:"sizes,omitempty"`
	Colors       []string        `json:"colors,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Variant representa una combinación vendible talla/color de un producto.
// Un producto posee muchas variantes; al borrar el producto se borran en cascada.
type Variant struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	SKU       string    `json:"sku"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// PriceChange registra un cambio explícito del precio de venta de un producto.
type PriceChange struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
	ChangedBy string          `json:"changed_by"`
	ChangedAt time.Time       `json:"changed_at"`
}
