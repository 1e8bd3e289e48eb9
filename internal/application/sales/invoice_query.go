package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/pdf"
)

// InvoiceQuery consultas de facturas y generación del comprobante PDF sobre
// los repos vivos.
type InvoiceQuery struct {
	invoices repository.InvoiceRepository
	orders   repository.OrderRepository
	variants repository.VariantRepository
	products repository.ProductRepository
	receipts *pdf.ReceiptGenerator
}

// NewInvoiceQuery construye la consulta.
func NewInvoiceQuery(
	invoices repository.InvoiceRepository,
	orders repository.OrderRepository,
	variants repository.VariantRepository,
	products repository.ProductRepository,
	receipts *pdf.ReceiptGenerator,
) *InvoiceQuery {
	return &InvoiceQuery{
		invoices: invoices,
		orders:   orders,
		variants: variants,
		products: products,
		receipts: receipts,
	}
}

// Get devuelve una factura por id.
func (q *InvoiceQuery) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	return q.invoices.GetByID(id)
}

// List devuelve todas las facturas.
func (q *InvoiceQuery) List(ctx context.Context) ([]entity.Invoice, error) {
	return q.invoices.List()
}

// ListPayments devuelve todos los recibos de pago.
func (q *InvoiceQuery) ListPayments(ctx context.Context) ([]entity.Payment, error) {
	return q.invoices.ListPayments()
}

// ReceiptPDF arma las líneas del comprobante desde la orden de la factura y
// genera el PDF.
func (q *InvoiceQuery) ReceiptPDF(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, err := q.invoices.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	order, err := q.orders.GetByID(invoice.OrderID)
	if err != nil {
		return nil, err
	}

	lines := make([]pdf.ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		line := pdf.ReceiptLine{
			Quantity:  item.Quantity,
			UnitPrice: item.PriceAtTime,
			Subtotal:  item.PriceAtTime.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		if variant, err := q.variants.GetByID(item.VariantID); err == nil {
			line.SKU = variant.SKU
			if product, err := q.products.GetByID(variant.ProductID); err == nil {
				line.Description = product.Name
			}
		}
		lines = append(lines, line)
	}
	return q.receipts.Generate(invoice, invoice.CustomerID, lines)
}
