package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/analytics"
)

// ReportingHandler expone los reportes derivados (protegido).
type ReportingHandler struct {
	uc *analytics.ReportingUseCase
}

// NewReportingHandler construye el handler.
func NewReportingHandler(uc *analytics.ReportingUseCase) *ReportingHandler {
	return &ReportingHandler{uc: uc}
}

// FinancialSummary devuelve los agregados financieros.
func (h *ReportingHandler) FinancialSummary(c *fiber.Ctx) error {
	out, err := h.uc.FinancialSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard devuelve el resumen del panel.
func (h *ReportingHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.DashboardSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
