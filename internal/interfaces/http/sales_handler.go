package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
)

// SalesHandler maneja ventas, devoluciones y reembolsos (protegido).
type SalesHandler struct {
	sale *sales.SaleUseCase
	ret  *sales.ReturnUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(sale *sales.SaleUseCase, ret *sales.ReturnUseCase) *SalesHandler {
	return &SalesHandler{sale: sale, ret: ret}
}

// ProcessSale ejecuta una venta multi-línea.
func (h *SalesHandler) ProcessSale(c *fiber.Ctx) error {
	var in dto.ProcessSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.sale.ProcessSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ProcessReturn registra una devolución sobre una orden.
func (h *SalesHandler) ProcessReturn(c *fiber.Ctx) error {
	var in dto.ProcessReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ret.ProcessReturn(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ProcessRefund registra un reembolso monetario sin movimiento de stock.
func (h *SalesHandler) ProcessRefund(c *fiber.Ctx) error {
	var in dto.RefundRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.ret.ProcessRefund(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}
