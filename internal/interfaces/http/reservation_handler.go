package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/reservation"
)

// ReservationHandler maneja el ciclo de vida de reservas blandas (protegido).
type ReservationHandler struct {
	uc *reservation.UseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *reservation.UseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Request registra una reserva.
func (h *ReservationHandler) Request(c *fiber.Ctx) error {
	var in dto.RequestReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Request(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista reservas, filtrable con ?status=.
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve una reserva.
func (h *ReservationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Prepayment registra un anticipo sobre la reserva.
func (h *ReservationHandler) Prepayment(c *fiber.Ctx) error {
	var in dto.PrepaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.RecordPrepayment(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Confirm convierte la reserva en venta.
func (h *ReservationHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Confirm(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel cancela la reserva y libera el stock.
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExpireDue expira todas las reservas vencidas (también lo hace el barrido
// periódico; este endpoint fuerza una pasada).
func (h *ReservationHandler) ExpireDue(c *fiber.Ctx) error {
	n, err := h.uc.ExpireDue(c.Context(), time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"expired": n})
}
