package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/usecase"
)

// PeriodHandler opera el candado del período fiscal (protegido).
type PeriodHandler struct {
	uc *usecase.PeriodUseCase
}

// NewPeriodHandler construye el handler.
func NewPeriodHandler(uc *usecase.PeriodUseCase) *PeriodHandler {
	return &PeriodHandler{uc: uc}
}

// Lock bloquea el período fiscal.
func (h *PeriodHandler) Lock(c *fiber.Ctx) error {
	var in dto.PeriodLockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.LockedBy == "" {
		in.LockedBy = GetEmail(c)
	}
	if err := h.uc.Lock(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Unlock desbloquea el período fiscal.
func (h *PeriodHandler) Unlock(c *fiber.Ctx) error {
	if err := h.uc.Unlock(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Status devuelve el estado del candado.
func (h *PeriodHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
