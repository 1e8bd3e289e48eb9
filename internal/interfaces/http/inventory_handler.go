package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
)

// InventoryHandler maneja ingreso de lotes, ajustes, transferencias y
// consultas de stock (protegido).
type InventoryHandler struct {
	intake      *inventory.IntakeUseCase
	adjustments *inventory.AdjustmentUseCase
	transfers   *inventory.TransferUseCase
	stock       *inventory.StockQuery
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	intake *inventory.IntakeUseCase,
	adjustments *inventory.AdjustmentUseCase,
	transfers *inventory.TransferUseCase,
	stock *inventory.StockQuery,
) *InventoryHandler {
	return &InventoryHandler{
		intake:      intake,
		adjustments: adjustments,
		transfers:   transfers,
		stock:       stock,
	}
}

// Intake registra la compra de un lote.
func (h *InventoryHandler) Intake(c *fiber.Ctx) error {
	var in dto.IntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.intake.AddBatch(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// VoidBatch anula un lote agotado.
func (h *InventoryHandler) VoidBatch(c *fiber.Ctx) error {
	if err := h.intake.VoidBatch(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust aplica un ajuste manual sobre un lote.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.adjustments.AdjustStock(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer mueve stock entre ubicaciones.
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.transfers.TransferStock(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StockLevels devuelve el stock vigente por variante y ubicación.
func (h *InventoryHandler) StockLevels(c *fiber.Ctx) error {
	out, err := h.stock.StockLevels(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements devuelve la pista de auditoría (filtrable por variant_id).
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.stock.MovementHistory(c.Context(), c.Query("variant_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Batches devuelve los lotes de una variante.
func (h *InventoryHandler) Batches(c *fiber.Ctx) error {
	out, err := h.stock.ListBatches(c.Context(), c.Params("variantId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
