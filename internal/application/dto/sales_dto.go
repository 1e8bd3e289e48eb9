package dto

import "github.com/shopspring/decimal"

// SaleItemRequest una línea de venta: variante, cantidad y precio acordado.
// Precio en cero = usar el precio de venta vigente del producto.
type SaleItemRequest struct {
	VariantID string          `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// ProcessSaleRequest body para POST /api/sales. La venta es todo-o-nada:
// si a cualquier línea le falta stock no se comete nada.
type ProcessSaleRequest struct {
	CustomerID          string            `json:"customer_id"`
	PreferredLocationID string            `json:"preferred_location_id,omitempty"`
	CostingMethod       string            `json:"costing_method,omitempty"` // FIFO (default) | LIFO
	Items               []SaleItemRequest `json:"items"`
}

// SaleResponse resultado de una venta procesada.
type SaleResponse struct {
	OrderID     string          `json:"order_id"`
	InvoiceID   string          `json:"invoice_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// ReturnItemRequest una línea de devolución sobre una línea de la orden original.
type ReturnItemRequest struct {
	OrderItemID string `json:"order_item_id"`
	Quantity    int    `json:"quantity"`
}

// ProcessReturnRequest body para POST /api/sales/:id/returns.
type ProcessReturnRequest struct {
	Items  []ReturnItemRequest `json:"items"`
	Reason string              `json:"reason,omitempty"`
}

// ReturnResponse montos revertidos por una devolución.
type ReturnResponse struct {
	OrderID         string          `json:"order_id"`
	RevenueReversal decimal.Decimal `json:"revenue_reversal"`
	COGSReversal    decimal.Decimal `json:"cogs_reversal"`
}

// RefundRequest body para POST /api/sales/:id/refunds (salida de caja, sin stock).
type RefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
}

// RecordPaymentRequest body para POST /api/invoices/:id/payments.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"`
}
