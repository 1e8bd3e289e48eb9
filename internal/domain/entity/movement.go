package entity

import "time"

// Tipos de movimiento de stock. TRANSFER genera siempre un par
// TRANSFER_OUT/TRANSFER_IN (salida en origen, entrada en destino).
const (
	MovementTypeIN          = "IN"
	MovementTypeOUT         = "OUT"
	MovementTypeRETURN      = "RETURN"
	MovementTypeADJUSTMENT  = "ADJUSTMENT"
	MovementTypeTransferIn  = "TRANSFER_IN"
	MovementTypeTransferOut = "TRANSFER_OUT"
)

// Tipos de referencia de un movimiento (qué operación lo originó).
const (
	ReferenceIntake      = "intake"
	ReferenceOrder       = "order"
	ReferenceReturn      = "return"
	ReferenceAdjustment  = "adjustment"
	ReferenceTransfer    = "transfer"
	ReferenceReservation = "reservation"
)

// StockMovement es el registro inmutable de un movimiento físico de stock.
// La cantidad es siempre magnitud positiva; el tipo indica la dirección.
// Nunca se modifica después de creado (pista de auditoría append-only).
type StockMovement struct {
	ID            string    `json:"id"`
	VariantID     string    `json:"variant_id"`
	BatchID       string    `json:"batch_id"`
	LocationID    string    `json:"location_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   string    `json:"reference_id"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
