package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestReservationRequest body para POST /api/reservations.
//
// AllowUnderstocked preserva la política de negocio de aceptar solicitudes
// aunque el stock disponible no alcance a cubrirlas: la reserva se registra
// con lotes fijados parciales. Con false, la solicitud falla con
// INSUFFICIENT_STOCK. Es una decisión explícita, no una asignación parcial
// silenciosa.
type RequestReservationRequest struct {
	CustomerName      string     `json:"customer_name"`
	CustomerPhone     string     `json:"customer_phone"`
	VariantID         string     `json:"variant_id"`
	Quantity          int        `json:"quantity"`
	AllowUnderstocked bool       `json:"allow_understocked"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

// PrepaymentRequest body para POST /api/reservations/:id/prepayments.
type PrepaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"`
}

// ConfirmReservationRequest body para POST /api/reservations/:id/confirm.
// Convierte la reserva en una venta real (orden + factura pagada + asiento).
// El costeo no se elige aquí: la venta sale de los pares (lote, cantidad)
// fijados al solicitar la reserva.
type ConfirmReservationRequest struct {
	CustomerID string          `json:"customer_id,omitempty"`
	Price      decimal.Decimal `json:"price"` // cero = precio de venta vigente
}
