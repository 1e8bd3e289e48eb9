package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// PaymentUseCase registra abonos a facturas.
type PaymentUseCase struct {
	txRunner ports.TxRunner
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner ports.TxRunner) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner}
}

// RecordPayment agrega un recibo append-only, acumula PaidAmount en la factura
// (unpaid -> partial -> paid) y postea débito Caja / crédito Cuentas por Cobrar.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, invoiceID string, in dto.RecordPaymentRequest) error {
	if invoiceID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		invoice, err := tx.Invoices.GetByID(invoiceID)
		if err != nil {
			return err
		}

		invoice.ApplyPayment(in.Amount, now)
		if err := tx.Invoices.Update(invoice); err != nil {
			return err
		}
		if err := tx.Invoices.CreatePayment(&entity.Payment{
			ID:            uuid.New().String(),
			InvoiceID:     invoiceID,
			ReferenceType: entity.PaymentReferenceInvoice,
			ReferenceID:   invoiceID,
			Amount:        in.Amount,
			Method:        in.Method,
			ReceivedAt:    now,
		}); err != nil {
			return err
		}
		return tx.Journal.Create(&entity.JournalEntry{
			ID:            uuid.New().String(),
			Date:          now,
			Description:   fmt.Sprintf("Abono a factura %s", invoiceID),
			ReferenceType: entity.PaymentReferenceInvoice,
			ReferenceID:   invoiceID,
			CreatedAt:     now,
			Items: []entity.JournalEntryItem{
				entity.Debit(entity.AccountCash, in.Amount),
				entity.Credit(entity.AccountReceivable, in.Amount),
			},
		})
	})
}
