// Package reservation implementa la gestión de reservas blandas: retenciones
// de stock a la espera de confirmación, con anticipos y conversión a venta.
package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/costing"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida completo de una reserva. Las lecturas
// usan el repo vivo; todas las mutaciones pasan por el TxRunner.
type UseCase struct {
	txRunner     ports.TxRunner
	reservations repository.ReservationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, reservations repository.ReservationRepository) *UseCase {
	return &UseCase{txRunner: txRunner, reservations: reservations}
}

// Get devuelve una reserva por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Reservation, error) {
	return uc.reservations.GetByID(id)
}

// List devuelve las reservas, filtrable por estado.
func (uc *UseCase) List(ctx context.Context, status string) ([]entity.Reservation, error) {
	if status == "" {
		return uc.reservations.List()
	}
	return uc.reservations.ListByStatus(status)
}

// Request registra una reserva: corre el asignador en modo lectura (FIFO por
// fecha de compra) y, en lugar de descontar stock, incrementa
// QuantityReserved en los lotes elegidos y fija los pares (lote, cantidad)
// en la reserva.
//
// Política de negocio explícita: con AllowUnderstocked la solicitud se acepta
// aunque el disponible no alcance; los lotes fijados quedan parciales. No es
// una asignación parcial silenciosa sino una decisión del negocio.
func (uc *UseCase) Request(ctx context.Context, in dto.RequestReservationRequest) (*entity.Reservation, error) {
	if in.VariantID == "" || in.Quantity <= 0 || in.CustomerName == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var created *entity.Reservation

	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		if _, err := tx.Variants.GetByID(in.VariantID); err != nil {
			return err
		}

		batches, err := tx.Batches.ListByVariant(in.VariantID)
		if err != nil {
			return err
		}

		var plan []costing.Allocation
		if in.AllowUnderstocked {
			plan, err = costing.AllocateUpTo(batches, in.VariantID, "", in.Quantity, costing.MethodFIFO)
		} else {
			plan, err = costing.Allocate(batches, in.VariantID, "", in.Quantity, costing.MethodFIFO)
		}
		if err != nil {
			return err
		}

		res := entity.Reservation{
			ID:               uuid.New().String(),
			CustomerName:     in.CustomerName,
			CustomerPhone:    in.CustomerPhone,
			VariantID:        in.VariantID,
			Quantity:         in.Quantity,
			Status:           entity.ReservationPending,
			PrepaymentAmount: decimal.Zero,
			ExpiresAt:        in.ExpiresAt,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		for _, alloc := range plan {
			batch := alloc.Batch
			batch.QuantityReserved += alloc.Quantity
			if err := tx.Batches.Update(&batch); err != nil {
				return err
			}
			res.ReservedBatches = append(res.ReservedBatches, entity.ReservedBatch{
				BatchID:  batch.ID,
				Quantity: alloc.Quantity,
			})
		}
		if err := tx.Reservations.Create(&res); err != nil {
			return err
		}
		created = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel libera el stock reservado y deja la reserva en estado terminal
// cancelled. Cancelación y confirmación son mutuamente excluyentes: sobre un
// estado terminal cualquier cambio posterior se rechaza con conflicto.
func (uc *UseCase) Cancel(ctx context.Context, id string) error {
	return uc.release(ctx, id, entity.ReservationCancelled)
}

// Expire libera el stock reservado y marca la reserva como expirada.
func (uc *UseCase) Expire(ctx context.Context, id string) error {
	return uc.release(ctx, id, entity.ReservationExpired)
}

// ExpireDue expira en una sola transacción todas las reservas vivas cuya fecha
// límite ya pasó. Una reserva pagada del todo no expira: se salta. Retorna
// cuántas expiró.
func (uc *UseCase) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	expired := 0
	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		due, err := tx.Reservations.ListExpiredBefore(now)
		if err != nil {
			return err
		}
		for i := range due {
			if !entity.CanTransition(due[i].Status, entity.ReservationExpired) {
				continue
			}
			if err := releaseInTx(tx, &due[i], entity.ReservationExpired, now); err != nil {
				return err
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}

func (uc *UseCase) release(ctx context.Context, id, target string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		res, err := tx.Reservations.GetByID(id)
		if err != nil {
			return err
		}
		return releaseInTx(tx, res, target, now)
	})
}

// releaseInTx suelta QuantityReserved de cada lote fijado, por la cantidad
// fijada, con tope en cero (nunca negativo).
func releaseInTx(tx ports.LedgerTx, res *entity.Reservation, target string, now time.Time) error {
	if !entity.CanTransition(res.Status, target) {
		return domain.ErrConflict
	}
	for _, rb := range res.ReservedBatches {
		batch, err := tx.Batches.GetByID(rb.BatchID)
		if err != nil {
			return err
		}
		batch.QuantityReserved -= rb.Quantity
		if batch.QuantityReserved < 0 {
			batch.QuantityReserved = 0
		}
		if err := tx.Batches.Update(batch); err != nil {
			return err
		}
	}
	res.Status = target
	res.UpdatedAt = now
	return tx.Reservations.Update(res)
}

// RecordPrepayment registra un anticipo del cliente: postea débito Caja /
// crédito Depósitos de Clientes (ingreso no devengado), acumula
// PrepaymentAmount y avanza el estado: confirmed_paid_fully si lo acumulado ya
// cubre la cantidad al precio de venta vigente, confirmed_prepaid en caso
// contrario. Una reserva pagada del todo deja de ser expirable.
func (uc *UseCase) RecordPrepayment(ctx context.Context, id string, in dto.PrepaymentRequest) error {
	if id == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		res, err := tx.Reservations.GetByID(id)
		if err != nil {
			return err
		}
		if entity.IsTerminalReservationStatus(res.Status) {
			return domain.ErrConflict
		}

		res.PrepaymentAmount = res.PrepaymentAmount.Add(in.Amount)

		variant, err := tx.Variants.GetByID(res.VariantID)
		if err != nil {
			return err
		}
		product, err := tx.Products.GetByID(variant.ProductID)
		if err != nil {
			return err
		}
		estimated := product.SellingPrice.Mul(decimal.NewFromInt(int64(res.Quantity)))
		switch {
		case res.PrepaymentAmount.GreaterThanOrEqual(estimated) && estimated.GreaterThan(decimal.Zero) &&
			entity.CanTransition(res.Status, entity.ReservationConfirmedPaidFully):
			res.Status = entity.ReservationConfirmedPaidFully
		case entity.CanTransition(res.Status, entity.ReservationConfirmedPrepaid):
			res.Status = entity.ReservationConfirmedPrepaid
		}
		res.UpdatedAt = now
		if err := tx.Reservations.Update(res); err != nil {
			return err
		}

		if err := tx.Invoices.CreatePayment(&entity.Payment{
			ID:            uuid.New().String(),
			ReferenceType: entity.PaymentReferenceReservation,
			ReferenceID:   id,
			Amount:        in.Amount,
			Method:        in.Method,
			ReceivedAt:    now,
		}); err != nil {
			return err
		}
		return tx.Journal.Create(&entity.JournalEntry{
			ID:            uuid.New().String(),
			Date:          now,
			Description:   fmt.Sprintf("Anticipo de reserva %s", id),
			ReferenceType: entity.ReferenceReservation,
			ReferenceID:   id,
			CreatedAt:     now,
			Items: []entity.JournalEntryItem{
				entity.Debit(entity.AccountCash, in.Amount),
				entity.Credit(entity.AccountUnearnedRevenue, in.Amount),
			},
		})
	})
}

// Confirm convierte la reserva en una venta real sobre las cantidades
// fijadas: por cada par (lote, cantidad) descuenta QuantityRemaining y libera
// el QuantityReserved correspondiente, registra el movimiento OUT, arma la
// orden con sus lotes de origen y crea la factura pagada en su totalidad.
//
// El asiento reconoce el anticipo previo: débito Depósitos de Clientes por lo
// ya anticipado y débito Caja por el resto, junto a las piernas estándar de
// ingreso y costo.
func (uc *UseCase) Confirm(ctx context.Context, id string, in dto.ConfirmReservationRequest) (*dto.SaleResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var resp *dto.SaleResponse

	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		res, err := tx.Reservations.GetByID(id)
		if err != nil {
			return err
		}
		if !entity.CanTransition(res.Status, entity.ReservationCompleted) {
			return domain.ErrConflict
		}

		variant, err := tx.Variants.GetByID(res.VariantID)
		if err != nil {
			return err
		}
		price := in.Price
		if price.IsZero() {
			product, err := tx.Products.GetByID(variant.ProductID)
			if err != nil {
				return err
			}
			price = product.SellingPrice
		}

		orderID := uuid.New().String()
		orderItem := entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			VariantID:   res.VariantID,
			PriceAtTime: price,
		}
		var totalCOGS decimal.Decimal
		soldQty := 0

		for _, rb := range res.ReservedBatches {
			batch, err := tx.Batches.GetByID(rb.BatchID)
			if err != nil {
				return err
			}
			batch.QuantityRemaining -= rb.Quantity
			if batch.QuantityRemaining < 0 {
				batch.QuantityRemaining = 0
			}
			batch.QuantityReserved -= rb.Quantity
			if batch.QuantityReserved < 0 {
				batch.QuantityReserved = 0
			}
			if err := tx.Batches.Update(batch); err != nil {
				return err
			}
			if err := tx.Movements.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				VariantID:     res.VariantID,
				BatchID:       batch.ID,
				LocationID:    batch.LocationID,
				Type:          entity.MovementTypeOUT,
				Quantity:      rb.Quantity,
				ReferenceType: entity.ReferenceReservation,
				ReferenceID:   res.ID,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
			orderItem.Batches = append(orderItem.Batches, entity.OrderItemBatch{
				BatchID:    batch.ID,
				Quantity:   rb.Quantity,
				CostAtTime: batch.UnitCost,
			})
			totalCOGS = totalCOGS.Add(batch.UnitCost.Mul(decimal.NewFromInt(int64(rb.Quantity))))
			soldQty += rb.Quantity
		}
		if soldQty == 0 {
			return domain.ErrInsufficientStock
		}

		orderItem.Quantity = soldQty
		orderItem.TotalCost = totalCOGS
		totalRevenue := price.Mul(decimal.NewFromInt(int64(soldQty)))

		order := entity.Order{
			ID:          orderID,
			CustomerID:  in.CustomerID,
			TotalAmount: totalRevenue,
			TotalCost:   totalCOGS,
			Date:        now,
			CreatedAt:   now,
			Items:       []entity.OrderItem{orderItem},
		}
		if err := tx.Orders.Create(&order); err != nil {
			return err
		}

		invoice := entity.Invoice{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			CustomerID:  in.CustomerID,
			TotalAmount: totalRevenue,
			PaidAmount:  totalRevenue,
			Status:      entity.InvoiceStatusPaid,
			Date:        now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Invoices.Create(&invoice); err != nil {
			return err
		}

		// Porción ya anticipada contra el resto cobrado en caja al confirmar.
		prepaid := res.PrepaymentAmount
		if prepaid.GreaterThan(totalRevenue) {
			prepaid = totalRevenue
		}
		cashRemainder := totalRevenue.Sub(prepaid)
		if cashRemainder.GreaterThan(decimal.Zero) {
			if err := tx.Invoices.CreatePayment(&entity.Payment{
				ID:            uuid.New().String(),
				InvoiceID:     invoice.ID,
				ReferenceType: entity.PaymentReferenceInvoice,
				ReferenceID:   invoice.ID,
				Amount:        cashRemainder,
				ReceivedAt:    now,
			}); err != nil {
				return err
			}
		}

		items := []entity.JournalEntryItem{
			entity.Credit(entity.AccountRevenue, totalRevenue),
			entity.Debit(entity.AccountCOGS, totalCOGS),
			entity.Credit(entity.AccountInventory, totalCOGS),
		}
		if prepaid.GreaterThan(decimal.Zero) {
			items = append(items, entity.Debit(entity.AccountUnearnedRevenue, prepaid))
		}
		if cashRemainder.GreaterThan(decimal.Zero) {
			items = append(items, entity.Debit(entity.AccountCash, cashRemainder))
		}
		if err := tx.Journal.Create(&entity.JournalEntry{
			ID:            uuid.New().String(),
			Date:          now,
			Description:   fmt.Sprintf("Venta por reserva %s", res.ID),
			ReferenceType: entity.ReferenceReservation,
			ReferenceID:   res.ID,
			CreatedAt:     now,
			Items:         items,
		}); err != nil {
			return err
		}

		res.Status = entity.ReservationCompleted
		res.UpdatedAt = now
		if err := tx.Reservations.Update(res); err != nil {
			return err
		}

		resp = &dto.SaleResponse{
			OrderID:     orderID,
			InvoiceID:   invoice.ID,
			TotalAmount: totalRevenue,
			TotalCost:   totalCOGS,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
