// Package memory implementa el Ledger Store: la colección autoritativa en
// memoria de todas las entidades del motor, con acceso serializado y
// transacciones todo-o-nada sobre un clon del estado.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// Asegura que Store implementa el puerto de transacciones.
var _ ports.TxRunner = (*Store)(nil)

// Store es el dueño del estado del ledger. Todas las operaciones mutadoras
// pasan por Run (candado de escritura global);
// las lecturas toman el candado de lectura y ven siempre un estado consistente.
type Store struct {
	mu    sync.RWMutex
	state *ledgerState
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newLedgerState()}
}

// Run ejecuta fn dentro de una transacción del ledger: toma el candado de
// escritura, clona el estado, ata los repositorios al clon y, solo si fn
// retorna nil, publica el clon como nuevo estado. Un error descarta el clon
// completo; ninguna mutación parcial es observable jamás.
//
// Equivale al Begin/Commit/Rollback del TxRunner de PostgreSQL, sin I/O.
func (s *Store) Run(_ context.Context, fn func(tx ports.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := s.state.clone()
	if err := fn(s.txRepos(clone)); err != nil {
		return err
	}
	s.state = clone
	return nil
}

func (s *Store) txRepos(st *ledgerState) ports.LedgerTx {
	return ports.LedgerTx{
		Products:     &productRepo{baseRepo{st: st}},
		Variants:     &variantRepo{baseRepo{st: st}},
		Batches:      &batchRepo{baseRepo{st: st}},
		Movements:    &movementRepo{baseRepo{st: st}},
		Orders:       &orderRepo{baseRepo{st: st}},
		Invoices:     &invoiceRepo{baseRepo{st: st}},
		Journal:      &journalRepo{baseRepo{st: st}},
		Reservations: &reservationRepo{baseRepo{st: st}},
		Locations:    &locationRepo{baseRepo{st: st}},
		Period:       &periodRepo{baseRepo{st: st}},
	}
}

// Repositorios "vivos": cada método toma el candado del store por su cuenta.
// Sirven para lecturas y para el CRUD simple de una sola entidad.

func (s *Store) Products() repository.ProductRepository   { return &productRepo{baseRepo{s: s}} }
func (s *Store) Variants() repository.VariantRepository   { return &variantRepo{baseRepo{s: s}} }
func (s *Store) Batches() repository.BatchRepository      { return &batchRepo{baseRepo{s: s}} }
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{baseRepo{s: s}} }
func (s *Store) Orders() repository.OrderRepository       { return &orderRepo{baseRepo{s: s}} }
func (s *Store) Invoices() repository.InvoiceRepository   { return &invoiceRepo{baseRepo{s: s}} }
func (s *Store) Journal() repository.JournalRepository    { return &journalRepo{baseRepo{s: s}} }
func (s *Store) Reservations() repository.ReservationRepository {
	return &reservationRepo{baseRepo{s: s}}
}
func (s *Store) Locations() repository.LocationRepository { return &locationRepo{baseRepo{s: s}} }
func (s *Store) Period() repository.PeriodRepository      { return &periodRepo{baseRepo{s: s}} }
func (s *Store) Users() repository.UserRepository         { return &userRepo{baseRepo{s: s}} }

// Snapshot toma una foto serializable de todas las colecciones bajo el
// candado de lectura. Es el contrato con el colaborador de persistencia:
// cualquier formato que preserve estas formas e ids es aceptable.
func (s *Store) Snapshot() *repository.LedgerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	snap := &repository.LedgerSnapshot{
		SchemaVersion: repository.SnapshotSchemaVersion,
		TakenAt:       time.Now(),
		Movements:     append([]entity.StockMovement(nil), st.Movements...),
		Journal:       append([]entity.JournalEntry(nil), st.Journal...),
		Payments:      append([]entity.Payment(nil), st.Payments...),
		PriceChanges:  append([]entity.PriceChange(nil), st.PriceChanges...),
		Period:        st.Period,
	}
	for _, v := range st.Products {
		snap.Products = append(snap.Products, copyProduct(v))
	}
	for _, v := range st.Variants {
		snap.Variants = append(snap.Variants, v)
	}
	for _, v := range st.Batches {
		snap.Batches = append(snap.Batches, v)
	}
	for _, v := range st.Orders {
		snap.Orders = append(snap.Orders, copyOrder(v))
	}
	for _, v := range st.Invoices {
		snap.Invoices = append(snap.Invoices, v)
	}
	for _, v := range st.Reservations {
		snap.Reservations = append(snap.Reservations, copyReservation(v))
	}
	for _, v := range st.Locations {
		snap.Locations = append(snap.Locations, v)
	}
	for _, v := range st.Users {
		snap.Users = append(snap.Users, v)
	}
	return snap
}

// Restore reemplaza el estado completo con el contenido de una foto guardada.
// Se usa al arrancar; los ids se preservan tal cual.
func (s *Store) Restore(snap *repository.LedgerSnapshot) {
	if snap == nil {
		return
	}
	st := newLedgerState()
	for _, v := range snap.Products {
		st.Products[v.ID] = copyProduct(v)
	}
	for _, v := range snap.Variants {
		st.Variants[v.ID] = v
	}
	for _, v := range snap.Batches {
		st.Batches[v.ID] = v
	}
	for _, v := range snap.Orders {
		st.Orders[v.ID] = copyOrder(v)
	}
	for _, v := range snap.Invoices {
		st.Invoices[v.ID] = v
	}
	for _, v := range snap.Reservations {
		st.Reservations[v.ID] = copyReservation(v)
	}
	for _, v := range snap.Locations {
		st.Locations[v.ID] = v
	}
	for _, v := range snap.Users {
		st.Users[v.Email] = v
	}
	st.Movements = append([]entity.StockMovement(nil), snap.Movements...)
	st.Journal = append([]entity.JournalEntry(nil), snap.Journal...)
	st.Payments = append([]entity.Payment(nil), snap.Payments...)
	st.PriceChanges = append([]entity.PriceChange(nil), snap.PriceChanges...)
	st.Period = snap.Period

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
