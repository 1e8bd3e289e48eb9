package repository

import "github.com/tu-usuario/retail-ledger/internal/domain/entity"

// OrderRepository puerto de persistencia para órdenes de venta. Update existe
// solo para acumular cantidades devueltas en las líneas; el resto de la orden
// es inmutable después de creada.
type OrderRepository interface {
	Create(o *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List() ([]entity.Order, error)
	Update(o *entity.Order) error
}

// InvoiceRepository puerto de persistencia para facturas y sus recibos de pago.
type InvoiceRepository interface {
	Create(i *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByOrderID(orderID string) (*entity.Invoice, error)
	List() ([]entity.Invoice, error)
	Update(i *entity.Invoice) error
	CreatePayment(p *entity.Payment) error
	ListPayments() ([]entity.Payment, error)
}

// JournalRepository puerto para el libro diario, append-only.
type JournalRepository interface {
	Create(e *entity.JournalEntry) error
	List() ([]entity.JournalEntry, error)
}
