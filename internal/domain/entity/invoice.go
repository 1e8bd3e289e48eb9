package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una factura.
const (
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// Invoice es la cuenta por cobrar de una orden.
type Invoice struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Status      string          `json:"status"` // unpaid | partial | paid
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ApplyPayment acumula un abono y recalcula el estado. Los pagos son recibos
// append-only; la factura solo acumula.
func (i *Invoice) ApplyPayment(amount decimal.Decimal, at time.Time) {
	i.PaidAmount = i.PaidAmount.Add(amount)
	i.UpdatedAt = at
	switch {
	case i.PaidAmount.GreaterThanOrEqual(i.TotalAmount):
		i.Status = InvoiceStatusPaid
	case i.PaidAmount.GreaterThan(decimal.Zero):
		i.Status = InvoiceStatusPartial
	default:
		i.Status = InvoiceStatusUnpaid
	}
}

// Referencias de un pago: factura o reserva (anticipo).
const (
	PaymentReferenceInvoice     = "invoice"
	PaymentReferenceReservation = "reservation"
)

// Payment es un recibo de dinero, append-only. Los anticipos de reservas se
// registran antes de que exista la factura, con referencia a la reserva.
type Payment struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id,omitempty"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method,omitempty"`
	ReceivedAt    time.Time       `json:"received_at"`
}
