package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntakeRequest body para registrar la compra de un lote de stock.
type IntakeRequest struct {
	VariantID    string          `json:"variant_id"`
	LocationID   string          `json:"location_id"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"` // vacío = ahora
}

// Tipos de ajuste de stock. damage y loss reducen (con asiento de castigo);
// correction y return aumentan.
const (
	AdjustmentDamage     = "damage"
	AdjustmentLoss       = "loss"
	AdjustmentCorrection = "correction"
	AdjustmentReturn     = "return"
)

// AdjustStockRequest body para POST /api/inventory/adjustments.
type AdjustStockRequest struct {
	BatchID  string `json:"batch_id"`
	Type     string `json:"type"` // damage | loss | correction | return
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// TransferStockRequest body para POST /api/inventory/transfers.
type TransferStockRequest struct {
	VariantID      string `json:"variant_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int    `json:"quantity"`
}

// StockLevelDTO disponible de una variante por ubicación.
type StockLevelDTO struct {
	VariantID  string `json:"variant_id"`
	SKU        string `json:"sku"`
	LocationID string `json:"location_id"`
	Remaining  int    `json:"remaining"`
	Reserved   int    `json:"reserved"`
	Available  int    `json:"available"`
}
