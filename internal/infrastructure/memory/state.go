package memory

import (
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// ledgerState es el estado autoritativo completo del ledger. Los valores
// guardados en los mapas nunca se mutan en sitio: los repos copian al leer y
// reemplazan completo al escribir, de modo que clone() puede copiar mapas sin
// clonar cada entidad.
type ledgerState struct {
	Products     map[string]entity.Product
	Variants     map[string]entity.Variant
	Batches      map[string]entity.Batch
	Orders       map[string]entity.Order
	Invoices     map[string]entity.Invoice
	Reservations map[string]entity.Reservation
	Locations    map[string]entity.Location
	Users        map[string]entity.User

	Movements    []entity.StockMovement
	Journal      []entity.JournalEntry
	Payments     []entity.Payment
	PriceChanges []entity.PriceChange

	Period repository.PeriodLock
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		Products:     make(map[string]entity.Product),
		Variants:     make(map[string]entity.Variant),
		Batches:      make(map[string]entity.Batch),
		Orders:       make(map[string]entity.Order),
		Invoices:     make(map[string]entity.Invoice),
		Reservations: make(map[string]entity.Reservation),
		Locations:    make(map[string]entity.Location),
		Users:        make(map[string]entity.User),
	}
}

// clone copia el estado para una transacción. Las colecciones append-only se
// copian por slice nuevo; los mapas por entrada. Commit = swap del puntero.
func (s *ledgerState) clone() *ledgerState {
	c := &ledgerState{
		Products:     make(map[string]entity.Product, len(s.Products)),
		Variants:     make(map[string]entity.Variant, len(s.Variants)),
		Batches:      make(map[string]entity.Batch, len(s.Batches)),
		Orders:       make(map[string]entity.Order, len(s.Orders)),
		Invoices:     make(map[string]entity.Invoice, len(s.Invoices)),
		Reservations: make(map[string]entity.Reservation, len(s.Reservations)),
		Locations:    make(map[string]entity.Location, len(s.Locations)),
		Users:        make(map[string]entity.User, len(s.Users)),
		Movements:    append([]entity.StockMovement(nil), s.Movements...),
		Journal:      append([]entity.JournalEntry(nil), s.Journal...),
		Payments:     append([]entity.Payment(nil), s.Payments...),
		PriceChanges: append([]entity.PriceChange(nil), s.PriceChanges...),
		Period:       s.Period,
	}
	for k, v := range s.Products {
		c.Products[k] = v
	}
	for k, v := range s.Variants {
		c.Variants[k] = v
	}
	for k, v := range s.Batches {
		c.Batches[k] = v
	}
	for k, v := range s.Orders {
		c.Orders[k] = v
	}
	for k, v := range s.Invoices {
		c.Invoices[k] = v
	}
	for k, v := range s.Reservations {
		c.Reservations[k] = v
	}
	for k, v := range s.Locations {
		c.Locations[k] = v
	}
	for k, v := range s.Users {
		c.Users[k] = v
	}
	return c
}

// copyProduct devuelve una copia profunda (las listas de tallas/colores son mutables).
func copyProduct(p entity.Product) entity.Product {
	p.Sizes = append([]string(nil), p.Sizes...)
	p.Colors = append([]string(nil), p.Colors...)
	return p
}

// copyOrder devuelve una copia profunda de la orden con sus líneas y lotes.
func copyOrder(o entity.Order) entity.Order {
	items := make([]entity.OrderItem, len(o.Items))
	for i, item := range o.Items {
		item.Batches = append([]entity.OrderItemBatch(nil), item.Batches...)
		items[i] = item
	}
	o.Items = items
	return o
}

// copyReservation devuelve una copia profunda con los lotes fijados.
func copyReservation(r entity.Reservation) entity.Reservation {
	r.ReservedBatches = append([]entity.ReservedBatch(nil), r.ReservedBatches...)
	if r.ExpiresAt != nil {
		exp := *r.ExpiresAt
		r.ExpiresAt = &exp
	}
	return r
}

// copyJournalEntry devuelve una copia profunda del asiento con sus líneas.
func copyJournalEntry(e entity.JournalEntry) entity.JournalEntry {
	e.Items = append([]entity.JournalEntryItem(nil), e.Items...)
	return e
}
