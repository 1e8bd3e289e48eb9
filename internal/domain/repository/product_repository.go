package repository

import "github.com/tu-usuario/retail-ledger/internal/domain/entity"

// ProductRepository puerto de persistencia para productos del catálogo y su
// historial de precios.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List() ([]entity.Product, error)
	Update(p *entity.Product) error
	Delete(id string) error
	CreatePriceChange(pc *entity.PriceChange) error
	ListPriceChanges(productID string) ([]entity.PriceChange, error)
}

// VariantRepository puerto de persistencia para variantes talla/color.
type VariantRepository interface {
	Create(v *entity.Variant) error
	GetByID(id string) (*entity.Variant, error)
	GetBySKU(sku string) (*entity.Variant, error)
	ListByProduct(productID string) ([]entity.Variant, error)
	List() ([]entity.Variant, error)
	Delete(id string) error
	DeleteByProduct(productID string) error
}
