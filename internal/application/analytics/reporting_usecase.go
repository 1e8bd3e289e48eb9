// Package analytics deriva reportes financieros y operativos del ledger.
// Ningún agregado se guarda como estado: todo se recalcula de lotes, órdenes
// y pagos, con un cache de lectura opcional por delante.
package analytics

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// Claves de cache de reportes. Las operaciones mutadoras del host las
// invalidan después de cada commit.
const (
	CacheKeyFinancialSummary = "reports:financial_summary"
	CacheKeyDashboard        = "reports:dashboard"
)

// ReportingUseCase calcula los reportes derivados sobre los repos vivos.
type ReportingUseCase struct {
	batches      repository.BatchRepository
	variants     repository.VariantRepository
	orders       repository.OrderRepository
	invoices     repository.InvoiceRepository
	reservations repository.ReservationRepository
	period       repository.PeriodRepository
	cache        ports.ReportCache
}

// NewReportingUseCase construye el caso de uso.
func NewReportingUseCase(
	batches repository.BatchRepository,
	variants repository.VariantRepository,
	orders repository.OrderRepository,
	invoices repository.InvoiceRepository,
	reservations repository.ReservationRepository,
	period repository.PeriodRepository,
	cache ports.ReportCache,
) *ReportingUseCase {
	return &ReportingUseCase{
		batches:      batches,
		variants:     variants,
		orders:       orders,
		invoices:     invoices,
		reservations: reservations,
		period:       period,
		cache:        cache,
	}
}

// FinancialSummary deriva los agregados financieros. Colecciones vacías
// producen ceros, nunca error.
func (uc *ReportingUseCase) FinancialSummary(ctx context.Context) (dto.FinancialSummaryDTO, error) {
	var summary dto.FinancialSummaryDTO
	if hit, err := uc.cache.Get(ctx, CacheKeyFinancialSummary, &summary); err == nil && hit {
		return summary, nil
	}

	summary, err := uc.computeFinancial()
	if err != nil {
		return dto.FinancialSummaryDTO{}, err
	}
	// Un cache caído no tumba el reporte.
	_ = uc.cache.Set(ctx, CacheKeyFinancialSummary, summary)
	return summary, nil
}

func (uc *ReportingUseCase) computeFinancial() (dto.FinancialSummaryDTO, error) {
	summary := dto.FinancialSummaryDTO{
		InventoryValue: decimal.Zero,
		TotalRevenue:   decimal.Zero,
		TotalCOGS:      decimal.Zero,
		NetProfit:      decimal.Zero,
		CashReceived:   decimal.Zero,
	}

	batches, err := uc.batches.List()
	if err != nil {
		return summary, err
	}
	for _, b := range batches {
		if b.Voided {
			continue
		}
		summary.InventoryValue = summary.InventoryValue.Add(b.Value())
	}

	orders, err := uc.orders.List()
	if err != nil {
		return summary, err
	}
	for _, o := range orders {
		summary.TotalRevenue = summary.TotalRevenue.Add(o.TotalAmount)
		summary.TotalCOGS = summary.TotalCOGS.Add(o.TotalCost)
	}
	summary.NetProfit = summary.TotalRevenue.Sub(summary.TotalCOGS)

	payments, err := uc.invoices.ListPayments()
	if err != nil {
		return summary, err
	}
	for _, p := range payments {
		summary.CashReceived = summary.CashReceived.Add(p.Amount)
	}
	return summary, nil
}

// DashboardSummary arma el resumen del panel: agregados financieros más
// conteos operativos del momento.
func (uc *ReportingUseCase) DashboardSummary(ctx context.Context) (dto.DashboardSummaryDTO, error) {
	var summary dto.DashboardSummaryDTO
	if hit, err := uc.cache.Get(ctx, CacheKeyDashboard, &summary); err == nil && hit {
		return summary, nil
	}

	financial, err := uc.computeFinancial()
	if err != nil {
		return dto.DashboardSummaryDTO{}, err
	}
	summary.Financial = financial

	orders, err := uc.orders.List()
	if err != nil {
		return dto.DashboardSummaryDTO{}, err
	}
	summary.OrderCount = len(orders)

	reservations, err := uc.reservations.List()
	if err != nil {
		return dto.DashboardSummaryDTO{}, err
	}
	for _, r := range reservations {
		if !entity.IsTerminalReservationStatus(r.Status) {
			summary.OpenReservations++
		}
	}

	invoices, err := uc.invoices.List()
	if err != nil {
		return dto.DashboardSummaryDTO{}, err
	}
	for _, inv := range invoices {
		if inv.Status != entity.InvoiceStatusPaid {
			summary.UnpaidInvoices++
		}
	}

	variants, err := uc.variants.List()
	if err != nil {
		return dto.DashboardSummaryDTO{}, err
	}
	summary.ActiveVariantCount = len(variants)

	batches, err := uc.batches.List()
	if err != nil {
		return dto.DashboardSummaryDTO{}, err
	}
	for _, b := range batches {
		if !b.Voided && b.QuantityRemaining > 0 {
			summary.NonEmptyBatchCount++
		}
	}

	lock, err := uc.period.Get()
	if err != nil {
		return dto.DashboardSummaryDTO{}, err
	}
	summary.PeriodLocked = lock.Locked

	_ = uc.cache.Set(ctx, CacheKeyDashboard, summary)
	return summary, nil
}
