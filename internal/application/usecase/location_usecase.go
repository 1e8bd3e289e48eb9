package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// LocationUseCase administra bodegas y puntos de venta.
type LocationUseCase struct {
	txRunner  ports.TxRunner
	locations repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(txRunner ports.TxRunner, locations repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{txRunner: txRunner, locations: locations}
}

// CreateLocation da de alta una ubicación.
func (uc *LocationUseCase) CreateLocation(ctx context.Context, in dto.CreateLocationRequest) (*entity.Location, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.LocationTypeWarehouse && in.Type != entity.LocationTypeStore {
		return nil, domain.ErrInvalidInput
	}
	location := entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx ports.LedgerTx) error {
		if err := ports.EnsurePeriodOpen(tx); err != nil {
			return err
		}
		return tx.Locations.Create(&location)
	})
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// GetLocation devuelve una ubicación por id.
func (uc *LocationUseCase) GetLocation(ctx context.Context, id string) (*entity.Location, error) {
	return uc.locations.GetByID(id)
}

// ListLocations devuelve todas las ubicaciones.
func (uc *LocationUseCase) ListLocations(ctx context.Context) ([]entity.Location, error) {
	return uc.locations.List()
}
