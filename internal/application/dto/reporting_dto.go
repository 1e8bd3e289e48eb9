package dto

import "github.com/shopspring/decimal"

// FinancialSummaryDTO agregados derivados del ledger. Las funciones de
// reporte nunca fallan: colecciones vacías producen ceros.
type FinancialSummaryDTO struct {
	InventoryValue decimal.Decimal `json:"inventory_value"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCOGS      decimal.Decimal `json:"total_cogs"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	CashReceived   decimal.Decimal `json:"cash_received"`
}

// DashboardSummaryDTO resumen para el panel del host: totales globales más
// conteos operativos del momento.
type DashboardSummaryDTO struct {
	Financial          FinancialSummaryDTO `json:"financial"`
	OrderCount         int                 `json:"order_count"`
	OpenReservations   int                 `json:"open_reservations"`
	UnpaidInvoices     int                 `json:"unpaid_invoices"`
	PeriodLocked       bool                `json:"period_locked"`
	ActiveVariantCount int                 `json:"active_variant_count"`
	NonEmptyBatchCount int                 `json:"non_empty_batch_count"`
}
