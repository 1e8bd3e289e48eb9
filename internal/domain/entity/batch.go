package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote de stock de una variante en una ubicación, comprado
// en una fecha a un costo unitario. Los lotes nunca se borran físicamente:
// se reducen a cero y opcionalmente se anulan (Voided).
//
// Invariante: 0 <= QuantityReserved <= QuantityRemaining.
type Batch struct {
	ID                string          `json:"id"`
	VariantID         string          `json:"variant_id"`
	LocationID        string          `json:"location_id"`
	QuantityRemaining int             `json:"quantity_remaining"`
	QuantityReserved  int             `json:"quantity_reserved"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	Voided            bool            `json:"voided,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Available devuelve las unidades vendibles: restantes menos reservadas.
func (b Batch) Available() int {
	avail := b.QuantityRemaining - b.QuantityReserved
	if avail < 0 {
		return 0
	}
	return avail
}

// Value devuelve el valor de inventario del lote (restantes por costo unitario).
func (b Batch) Value() decimal.Decimal {
	return b.UnitCost.Mul(decimal.NewFromInt(int64(b.QuantityRemaining)))
}
