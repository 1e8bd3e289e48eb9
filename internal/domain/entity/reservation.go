package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva. pending puede confirmarse o morir; cancelled y
// expired son terminales y liberan stock; completed convirtió la reserva en
// una venta real.
const (
	ReservationPending            = "pending"
	ReservationConfirmedPrepaid   = "confirmed_prepaid"
	ReservationConfirmedNoPrepay  = "confirmed_no_prepayment"
	ReservationConfirmedPaidFully = "confirmed_paid_fully"
	ReservationCompleted          = "completed"
	ReservationCancelled          = "cancelled"
	ReservationExpired            = "expired"
)

// reservationTransitions define las transiciones legales del estado de una
// reserva. Los estados terminales no aparecen como origen: cualquier cambio
// posterior se rechaza.
var reservationTransitions = map[string][]string{
	ReservationPending: {
		ReservationConfirmedPrepaid,
		ReservationConfirmedNoPrepay,
		ReservationConfirmedPaidFully,
		ReservationCompleted,
		ReservationCancelled,
		ReservationExpired,
	},
	ReservationConfirmedPrepaid: {
		ReservationConfirmedPaidFully,
		ReservationCompleted,
		ReservationCancelled,
		ReservationExpired,
	},
	ReservationConfirmedNoPrepay: {
		ReservationConfirmedPrepaid,
		ReservationConfirmedPaidFully,
		ReservationCompleted,
		ReservationCancelled,
		ReservationExpired,
	},
	ReservationConfirmedPaidFully: {
		ReservationCompleted,
		ReservationCancelled,
	},
}

// CanTransition indica si el paso from -> to es legal según la máquina de estados.
func CanTransition(from, to string) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalReservationStatus indica si el estado ya no admite transiciones.
func IsTerminalReservationStatus(status string) bool {
	return status == ReservationCompleted ||
		status == ReservationCancelled ||
		status == ReservationExpired
}

// ReservedBatch es el par (lote, cantidad) fijado al momento de la solicitud.
type ReservedBatch struct {
	BatchID  string `json:"batch_id"`
	Quantity int    `json:"quantity"`
}

// Reservation es la retención blanda de stock de un cliente a la espera de
// confirmación. No descuenta stock físico: incrementa QuantityReserved en los
// lotes fijados. Por política de negocio la solicitud se acepta aunque el
// stock disponible no alcance (los lotes fijados quedan parciales).
type Reservation struct {
	ID               string          `json:"id"`
	CustomerName     string          `json:"customer_name"`
	CustomerPhone    string          `json:"customer_phone"`
	VariantID        string          `json:"variant_id"`
	Quantity         int             `json:"quantity"`
	Status           string          `json:"status"`
	ReservedBatches  []ReservedBatch `json:"reserved_batches"`
	PrepaymentAmount decimal.Decimal `json:"prepayment_amount"`
	ExpiresAt        *time.Time      `json:"expires_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PinnedQuantity devuelve cuántas unidades quedaron realmente fijadas en lotes.
func (r Reservation) PinnedQuantity() int {
	total := 0
	for _, rb := range r.ReservedBatches {
		total += rb.Quantity
	}
	return total
}
