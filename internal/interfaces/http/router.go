// Package http expone el motor del ledger como una API REST con Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/analytics"
	"github.com/tu-usuario/retail-ledger/internal/application/auth"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/application/reservation"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
	"github.com/tu-usuario/retail-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	LocationUC    *usecase.LocationUseCase
	PeriodUC      *usecase.PeriodUseCase
	IntakeUC      *inventory.IntakeUseCase
	AdjustmentUC  *inventory.AdjustmentUseCase
	TransferUC    *inventory.TransferUseCase
	StockQuery    *inventory.StockQuery
	SaleUC        *sales.SaleUseCase
	ReturnUC      *sales.ReturnUseCase
	PaymentUC     *sales.PaymentUseCase
	InvoiceQuery  *sales.InvoiceQuery
	ReservationUC *reservation.UseCase
	ReportingUC   *analytics.ReportingUseCase
	AuthUC        *auth.UseCase
	ReportCache   ports.ReportCache
	JWTSecret     string
}

// invalidateReportsOnWrite borra los reportes cacheados después de cada
// mutación exitosa: el próximo reporte se recalcula del ledger.
func invalidateReportsOnWrite(cache ports.ReportCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if c.Method() == fiber.MethodGet {
			return err
		}
		if err == nil && c.Response().StatusCode() < fiber.StatusBadRequest {
			_ = cache.Invalidate(c.Context(), analytics.CacheKeyFinancialSummary, analytics.CacheKeyDashboard)
		}
		return err
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), invalidateReportsOnWrite(deps.ReportCache))

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Put("/:id/price", productHandler.UpdatePrice)
	products.Get("/:id/price-changes", productHandler.ListPriceChanges)
	products.Post("/:id/variants", productHandler.CreateVariant)
	products.Get("/:id/variants", productHandler.ListVariants)
	products.Delete("/:id/variants/:variantId", productHandler.DeleteVariant)

	// Ubicaciones
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Inventario físico
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.IntakeUC, deps.AdjustmentUC, deps.TransferUC, deps.StockQuery)
	invGroup.Post("/intake", inventoryHandler.Intake)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Post("/transfers", inventoryHandler.Transfer)
	invGroup.Post("/batches/:id/void", inventoryHandler.VoidBatch)
	invGroup.Get("/stock", inventoryHandler.StockLevels)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/variants/:variantId/batches", inventoryHandler.Batches)

	// Ventas y devoluciones
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SaleUC, deps.ReturnUC)
	salesGroup.Post("/", salesHandler.ProcessSale)
	salesGroup.Post("/:id/returns", salesHandler.ProcessReturn)
	salesGroup.Post("/:id/refunds", salesHandler.ProcessRefund)

	// Facturas y pagos
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceQuery, deps.PaymentUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/payments", invoiceHandler.ListPayments)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/payments", invoiceHandler.RecordPayment)
	invoices.Get("/:id/pdf", invoiceHandler.ReceiptPDF)

	// Reservas
	reservations := protected.Group("/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	reservations.Post("/", reservationHandler.Request)
	reservations.Get("/", reservationHandler.List)
	reservations.Post("/expire-due", reservationHandler.ExpireDue)
	reservations.Get("/:id", reservationHandler.GetByID)
	reservations.Post("/:id/prepayments", reservationHandler.Prepayment)
	reservations.Post("/:id/confirm", reservationHandler.Confirm)
	reservations.Post("/:id/cancel", reservationHandler.Cancel)

	// Reportes
	reports := protected.Group("/reports")
	reportingHandler := NewReportingHandler(deps.ReportingUC)
	reports.Get("/financial-summary", reportingHandler.FinancialSummary)
	reports.Get("/dashboard", reportingHandler.Dashboard)

	// Período fiscal
	period := protected.Group("/period")
	periodHandler := NewPeriodHandler(deps.PeriodUC)
	period.Get("/", periodHandler.Status)
	period.Post("/lock", periodHandler.Lock)
	period.Post("/unlock", periodHandler.Unlock)
}
