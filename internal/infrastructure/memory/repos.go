package memory

import (
	"sort"
	"time"

	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// Cada repo opera sobre el estado vivo del store (tomando su candado) o sobre
// el clon de una transacción (sin candado: Run ya serializa). Los valores se
// copian al leer y se reemplazan completos al escribir; nadie muta en sitio.

type baseRepo struct {
	s  *Store
	st *ledgerState
}

func (r baseRepo) read(fn func(st *ledgerState)) {
	if r.st != nil {
		fn(r.st)
		return
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fn(r.s.state)
}

func (r baseRepo) write(fn func(st *ledgerState) error) error {
	if r.st != nil {
		return fn(r.st)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.state)
}

// ── Productos y variantes ─────────────────────────────────────────────────────

type productRepo struct{ baseRepo }
type variantRepo struct{ baseRepo }

var _ repository.ProductRepository = (*productRepo)(nil)
var _ repository.VariantRepository = (*variantRepo)(nil)

func (r *productRepo) Create(p *entity.Product) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Products[p.ID] = copyProduct(*p)
		return nil
	})
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	var out *entity.Product
	r.read(func(st *ledgerState) {
		if p, ok := st.Products[id]; ok {
			cp := copyProduct(p)
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *productRepo) List() ([]entity.Product, error) {
	var out []entity.Product
	r.read(func(st *ledgerState) {
		for _, p := range st.Products {
			out = append(out, copyProduct(p))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.Products[p.ID] = copyProduct(*p)
		return nil
	})
}

func (r *productRepo) Delete(id string) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Products, id)
		return nil
	})
}

func (r *productRepo) CreatePriceChange(pc *entity.PriceChange) error {
	return r.write(func(st *ledgerState) error {
		st.PriceChanges = append(st.PriceChanges, *pc)
		return nil
	})
}

func (r *productRepo) ListPriceChanges(productID string) ([]entity.PriceChange, error) {
	var out []entity.PriceChange
	r.read(func(st *ledgerState) {
		for _, pc := range st.PriceChanges {
			if pc.ProductID == productID {
				out = append(out, pc)
			}
		}
	})
	return out, nil
}

func (r *variantRepo) Create(v *entity.Variant) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Variants[v.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, existing := range st.Variants {
			if existing.SKU == v.SKU {
				return domain.ErrDuplicate
			}
		}
		st.Variants[v.ID] = *v
		return nil
	})
}

func (r *variantRepo) GetByID(id string) (*entity.Variant, error) {
	var out *entity.Variant
	r.read(func(st *ledgerState) {
		if v, ok := st.Variants[id]; ok {
			out = &v
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *variantRepo) GetBySKU(sku string) (*entity.Variant, error) {
	var out *entity.Variant
	r.read(func(st *ledgerState) {
		for _, v := range st.Variants {
			if v.SKU == sku {
				cp := v
				out = &cp
				return
			}
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *variantRepo) ListByProduct(productID string) ([]entity.Variant, error) {
	var out []entity.Variant
	r.read(func(st *ledgerState) {
		for _, v := range st.Variants {
			if v.ProductID == productID {
				out = append(out, v)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (r *variantRepo) List() ([]entity.Variant, error) {
	var out []entity.Variant
	r.read(func(st *ledgerState) {
		for _, v := range st.Variants {
			out = append(out, v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (r *variantRepo) Delete(id string) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Variants[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Variants, id)
		return nil
	})
}

func (r *variantRepo) DeleteByProduct(productID string) error {
	return r.write(func(st *ledgerState) error {
		for id, v := range st.Variants {
			if v.ProductID == productID {
				delete(st.Variants, id)
			}
		}
		return nil
	})
}

// ── Lotes y movimientos ───────────────────────────────────────────────────────

type batchRepo struct{ baseRepo }
type movementRepo struct{ baseRepo }

var _ repository.BatchRepository = (*batchRepo)(nil)
var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *batchRepo) Create(b *entity.Batch) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Batches[b.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Batches[b.ID] = *b
		return nil
	})
}

func (r *batchRepo) GetByID(id string) (*entity.Batch, error) {
	var out *entity.Batch
	r.read(func(st *ledgerState) {
		if b, ok := st.Batches[id]; ok {
			out = &b
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *batchRepo) ListByVariant(variantID string) ([]entity.Batch, error) {
	var out []entity.Batch
	r.read(func(st *ledgerState) {
		for _, b := range st.Batches {
			if b.VariantID == variantID {
				out = append(out, b)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PurchaseDate.Before(out[j].PurchaseDate) })
	return out, nil
}

func (r *batchRepo) List() ([]entity.Batch, error) {
	var out []entity.Batch
	r.read(func(st *ledgerState) {
		for _, b := range st.Batches {
			out = append(out, b)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PurchaseDate.Before(out[j].PurchaseDate) })
	return out, nil
}

func (r *batchRepo) Update(b *entity.Batch) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Batches[b.ID]; !ok {
			return domain.ErrNotFound
		}
		st.Batches[b.ID] = *b
		return nil
	})
}

func (r *movementRepo) Create(m *entity.StockMovement) error {
	return r.write(func(st *ledgerState) error {
		st.Movements = append(st.Movements, *m)
		return nil
	})
}

func (r *movementRepo) ListByVariant(variantID string) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	r.read(func(st *ledgerState) {
		for _, m := range st.Movements {
			if m.VariantID == variantID {
				out = append(out, m)
			}
		}
	})
	return out, nil
}

func (r *movementRepo) List() ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	r.read(func(st *ledgerState) {
		out = append(out, st.Movements...)
	})
	return out, nil
}

// ── Órdenes, facturas y diario ────────────────────────────────────────────────

type orderRepo struct{ baseRepo }
type invoiceRepo struct{ baseRepo }
type journalRepo struct{ baseRepo }

var _ repository.OrderRepository = (*orderRepo)(nil)
var _ repository.InvoiceRepository = (*invoiceRepo)(nil)
var _ repository.JournalRepository = (*journalRepo)(nil)

func (r *orderRepo) Create(o *entity.Order) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Orders[o.ID] = copyOrder(*o)
		return nil
	})
}

func (r *orderRepo) GetByID(id string) (*entity.Order, error) {
	var out *entity.Order
	r.read(func(st *ledgerState) {
		if o, ok := st.Orders[id]; ok {
			cp := copyOrder(o)
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *orderRepo) List() ([]entity.Order, error) {
	var out []entity.Order
	r.read(func(st *ledgerState) {
		for _, o := range st.Orders {
			out = append(out, copyOrder(o))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *orderRepo) Update(o *entity.Order) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Orders[o.ID]; !ok {
			return domain.ErrNotFound
		}
		st.Orders[o.ID] = copyOrder(*o)
		return nil
	})
}

func (r *invoiceRepo) Create(i *entity.Invoice) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Invoices[i.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Invoices[i.ID] = *i
		return nil
	})
}

func (r *invoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	r.read(func(st *ledgerState) {
		if i, ok := st.Invoices[id]; ok {
			out = &i
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *invoiceRepo) GetByOrderID(orderID string) (*entity.Invoice, error) {
	var out *entity.Invoice
	r.read(func(st *ledgerState) {
		for _, i := range st.Invoices {
			if i.OrderID == orderID {
				cp := i
				out = &cp
				return
			}
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *invoiceRepo) List() ([]entity.Invoice, error) {
	var out []entity.Invoice
	r.read(func(st *ledgerState) {
		for _, i := range st.Invoices {
			out = append(out, i)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *invoiceRepo) Update(i *entity.Invoice) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Invoices[i.ID]; !ok {
			return domain.ErrNotFound
		}
		st.Invoices[i.ID] = *i
		return nil
	})
}

func (r *invoiceRepo) CreatePayment(p *entity.Payment) error {
	return r.write(func(st *ledgerState) error {
		st.Payments = append(st.Payments, *p)
		return nil
	})
}

func (r *invoiceRepo) ListPayments() ([]entity.Payment, error) {
	var out []entity.Payment
	r.read(func(st *ledgerState) {
		out = append(out, st.Payments...)
	})
	return out, nil
}

func (r *journalRepo) Create(e *entity.JournalEntry) error {
	if !e.Balanced() {
		return domain.ErrInvalidInput
	}
	return r.write(func(st *ledgerState) error {
		st.Journal = append(st.Journal, copyJournalEntry(*e))
		return nil
	})
}

func (r *journalRepo) List() ([]entity.JournalEntry, error) {
	var out []entity.JournalEntry
	r.read(func(st *ledgerState) {
		for _, e := range st.Journal {
			out = append(out, copyJournalEntry(e))
		}
	})
	return out, nil
}

// ── Reservas y ubicaciones ────────────────────────────────────────────────────

type reservationRepo struct{ baseRepo }
type locationRepo struct{ baseRepo }

var _ repository.ReservationRepository = (*reservationRepo)(nil)
var _ repository.LocationRepository = (*locationRepo)(nil)

func (r *reservationRepo) Create(res *entity.Reservation) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Reservations[res.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Reservations[res.ID] = copyReservation(*res)
		return nil
	})
}

func (r *reservationRepo) GetByID(id string) (*entity.Reservation, error) {
	var out *entity.Reservation
	r.read(func(st *ledgerState) {
		if res, ok := st.Reservations[id]; ok {
			cp := copyReservation(res)
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *reservationRepo) List() ([]entity.Reservation, error) {
	var out []entity.Reservation
	r.read(func(st *ledgerState) {
		for _, res := range st.Reservations {
			out = append(out, copyReservation(res))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *reservationRepo) ListByStatus(status string) ([]entity.Reservation, error) {
	var out []entity.Reservation
	r.read(func(st *ledgerState) {
		for _, res := range st.Reservations {
			if res.Status == status {
				out = append(out, copyReservation(res))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *reservationRepo) ListExpiredBefore(now time.Time) ([]entity.Reservation, error) {
	var out []entity.Reservation
	r.read(func(st *ledgerState) {
		for _, res := range st.Reservations {
			if entity.IsTerminalReservationStatus(res.Status) {
				continue
			}
			if res.ExpiresAt != nil && res.ExpiresAt.Before(now) {
				out = append(out, copyReservation(res))
			}
		}
	})
	return out, nil
}

func (r *reservationRepo) Update(res *entity.Reservation) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Reservations[res.ID]; !ok {
			return domain.ErrNotFound
		}
		st.Reservations[res.ID] = copyReservation(*res)
		return nil
	})
}

func (r *locationRepo) Create(l *entity.Location) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Locations[l.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Locations[l.ID] = *l
		return nil
	})
}

func (r *locationRepo) GetByID(id string) (*entity.Location, error) {
	var out *entity.Location
	r.read(func(st *ledgerState) {
		if l, ok := st.Locations[id]; ok {
			out = &l
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *locationRepo) List() ([]entity.Location, error) {
	var out []entity.Location
	r.read(func(st *ledgerState) {
		for _, l := range st.Locations {
			out = append(out, l)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *locationRepo) Update(l *entity.Location) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Locations[l.ID]; !ok {
			return domain.ErrNotFound
		}
		st.Locations[l.ID] = *l
		return nil
	})
}

// ── Período fiscal y usuarios ─────────────────────────────────────────────────

type periodRepo struct{ baseRepo }
type userRepo struct{ baseRepo }

var _ repository.PeriodRepository = (*periodRepo)(nil)
var _ repository.UserRepository = (*userRepo)(nil)

func (r *periodRepo) Get() (repository.PeriodLock, error) {
	var out repository.PeriodLock
	r.read(func(st *ledgerState) {
		out = st.Period
	})
	return out, nil
}

func (r *periodRepo) Set(lock repository.PeriodLock) error {
	return r.write(func(st *ledgerState) error {
		st.Period = lock
		return nil
	})
}

func (r *userRepo) Create(u *entity.User) error {
	return r.write(func(st *ledgerState) error {
		if _, ok := st.Users[u.Email]; ok {
			return domain.ErrDuplicate
		}
		st.Users[u.Email] = *u
		return nil
	})
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	var out *entity.User
	r.read(func(st *ledgerState) {
		if u, ok := st.Users[email]; ok {
			out = &u
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}
