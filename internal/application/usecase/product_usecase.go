// Package usecase contiene los casos de uso de catálogo y administración:
// productos, variantes, ubicaciones y el candado del período fiscal.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// ProductUseCase administra el catálogo de productos y variantes.
type ProductUseCase struct {
	txRunner ports.TxRunner
	products repository.ProductRepository
	variants repository.VariantRepository
}

// NewProductUseCase construye el caso de uso. Las lecturas usan los repos
// vivos; las escrituras pasan por el TxRunner.
func NewProductUseCase(txRunner ports.TxRunner, products repository.ProductRepository, variants repository.VariantRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, products: products, variants: variants}
}

// CreateProduct da de alta un producto activo del catálogo.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.SellingPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		Brand:        in.Brand,
		SellingPrice: in.SellingPrice,
		Sizes:        in.Sizes,
		Colors:       in.Colors,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		return tx.Products.Create(&product)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProduct devuelve un producto por id.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.products.GetByID(id)
}

// ListProducts devuelve el catálogo completo.
func (uc *ProductUseCase) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return uc.products.List()
}

// UpdateProduct modifica los campos descriptivos presentes en el body.
// El precio de venta no se toca aquí: tiene su operación explícita.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		product, err := tx.Products.GetByID(id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Category != nil {
			product.Category = *in.Category
		}
		if in.Brand != nil {
			product.Brand = *in.Brand
		}
		if in.Active != nil {
			product.Active = *in.Active
		}
		product.UpdatedAt = time.Now()
		if err := tx.Products.Update(product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateSellingPrice cambia el precio de venta y deja constancia en el
// historial de cambios de precio.
func (uc *ProductUseCase) UpdateSellingPrice(ctx context.Context, id string, in dto.UpdatePriceRequest) (*entity.Product, error) {
	if in.NewPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		product, err := tx.Products.GetByID(id)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Products.CreatePriceChange(&entity.PriceChange{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			OldPrice:  product.SellingPrice,
			NewPrice:  in.NewPrice,
			ChangedBy: in.ChangedBy,
			ChangedAt: now,
		}); err != nil {
			return err
		}
		product.SellingPrice = in.NewPrice
		product.UpdatedAt = now
		if err := tx.Products.Update(product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListPriceChanges devuelve el historial de precios de un producto.
func (uc *ProductUseCase) ListPriceChanges(ctx context.Context, productID string) ([]entity.PriceChange, error) {
	if _, err := uc.products.GetByID(productID); err != nil {
		return nil, err
	}
	return uc.products.ListPriceChanges(productID)
}

// DeleteProduct borra el producto y todas sus variantes en cascada. Los lotes
// y movimientos históricos no se tocan: el ledger es append-only.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		if _, err := tx.Products.GetByID(id); err != nil {
			return err
		}
		if err := tx.Variants.DeleteByProduct(id); err != nil {
			return err
		}
		return tx.Products.Delete(id)
	})
}

// CreateVariant da de alta una variante talla/color. El SKU es único en todo
// el catálogo.
func (uc *ProductUseCase) CreateVariant(ctx context.Context, productID string, in dto.CreateVariantRequest) (*entity.Variant, error) {
	if in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	variant := entity.Variant{
		ID:        uuid.New().String(),
		ProductID: productID,
		SKU:       in.SKU,
		Size:      in.Size,
		Color:     in.Color,
		CreatedAt: time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		if _, err := tx.Products.GetByID(productID); err != nil {
			return err
		}
		if _, err := tx.Variants.GetBySKU(in.SKU); err == nil {
			return domain.ErrDuplicate
		}
		return tx.Variants.Create(&variant)
	})
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// ListVariants devuelve las variantes de un producto.
func (uc *ProductUseCase) ListVariants(ctx context.Context, productID string) ([]entity.Variant, error) {
	if _, err := uc.products.GetByID(productID); err != nil {
		return nil, err
	}
	return uc.variants.ListByProduct(productID)
}

// DeleteVariant borra una variante individual.
func (uc *ProductUseCase) DeleteVariant(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		if _, err := tx.Variants.GetByID(id); err != nil {
			return err
		}
		return tx.Variants.Delete(id)
	})
}
