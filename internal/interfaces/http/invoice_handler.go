package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
)

// InvoiceHandler maneja consultas de facturas, abonos y el comprobante PDF
// (protegido).
type InvoiceHandler struct {
	query    *sales.InvoiceQuery
	payments *sales.PaymentUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(query *sales.InvoiceQuery, payments *sales.PaymentUseCase) *InvoiceHandler {
	return &InvoiceHandler{query: query, payments: payments}
}

// List lista todas las facturas.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.query.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve una factura.
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordPayment registra un abono sobre una factura.
func (h *InvoiceHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.payments.RecordPayment(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ListPayments lista todos los recibos de pago.
func (h *InvoiceHandler) ListPayments(c *fiber.Ctx) error {
	out, err := h.query.ListPayments(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReceiptPDF genera y descarga el comprobante PDF de la factura.
func (h *InvoiceHandler) ReceiptPDF(c *fiber.Ctx) error {
	data, err := h.query.ReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante.pdf"`)
	return c.Send(data)
}
