package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order agrupa las líneas de una venta confirmada.
type Order struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `json:"items"`
}

// OrderItem es una línea de venta: una variante, una cantidad y el precio
// vigente al momento de la venta (inmutable aunque el catálogo cambie después).
type OrderItem struct {
	ID          string           `json:"id"`
	OrderID     string           `json:"order_id"`
	VariantID   string           `json:"variant_id"`
	Quantity    int              `json:"quantity"`
	PriceAtTime decimal.Decimal  `json:"price_at_time"`
	TotalCost   decimal.Decimal  `json:"total_cost"`
	ReturnedQty int              `json:"returned_qty"`
	Batches     []OrderItemBatch `json:"batches"`
}

// OrderItemBatch registra de qué lote y a qué costo se extrajo cada porción de
// la línea. Es lo que hace trazable el COGS y las devoluciones hasta el lote
// de origen. CostAtTime queda congelado al momento de la venta.
type OrderItemBatch struct {
	BatchID     string          `json:"batch_id"`
	Quantity    int             `json:"quantity"`
	CostAtTime  decimal.Decimal `json:"cost_at_time"`
	ReturnedQty int             `json:"returned_qty"`
}
