// Package costing contiene los servicios de dominio de costeo: la selección
// de lotes FIFO/LIFO que determina qué costo unitario se carga a cada venta.
package costing

import (
	"sort"

	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// Métodos de costeo soportados.
const (
	MethodFIFO = "FIFO"
	MethodLIFO = "LIFO"
)

// Allocation es una porción del plan: cuántas unidades tomar de qué lote.
type Allocation struct {
	Batch    entity.Batch
	Quantity int
}

// Allocate planifica de qué lotes extraer quantity unidades de una variante.
// Es una función de planificación pura: no muta nada; el caller aplica el plan.
//
// Candidatos: lotes no anulados de la variante con disponible > 0
// (restante menos reservado). Orden: primero los lotes de la ubicación
// preferida y luego por fecha de compra, ascendente para FIFO y descendente
// para LIFO. La preferencia de ubicación es una decisión de política: se vende
// primero desde el punto de venta principal antes que desde bodegas, y el
// método de costeo se respeta dentro de cada franja de ubicación.
//
// Retorna ErrInsufficientStock si el disponible total es menor a lo pedido.
func Allocate(batches []entity.Batch, variantID, preferredLocationID string, quantity int, method string) ([]Allocation, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if method != MethodFIFO && method != MethodLIFO {
		return nil, domain.ErrInvalidInput
	}

	candidates := make([]entity.Batch, 0, len(batches))
	available := 0
	for _, b := range batches {
		if b.VariantID != variantID || b.Voided || b.Available() <= 0 {
			continue
		}
		candidates = append(candidates, b)
		available += b.Available()
	}
	if available < quantity {
		return nil, domain.ErrInsufficientStock
	}

	sortCandidates(candidates, preferredLocationID, method)

	plan := make([]Allocation, 0, len(candidates))
	remaining := quantity
	for _, b := range candidates {
		if remaining == 0 {
			break
		}
		take := b.Available()
		if take > remaining {
			take = remaining
		}
		plan = append(plan, Allocation{Batch: b, Quantity: take})
		remaining -= take
	}
	return plan, nil
}

// AllocateUpTo planifica como Allocate pero nunca falla por faltante: cubre
// min(quantity, disponible) y deja el resto sin respaldo. Lo usa la reserva
// blanda, que por política acepta solicitudes aunque el stock no alcance.
func AllocateUpTo(batches []entity.Batch, variantID, preferredLocationID string, quantity int, method string) ([]Allocation, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if method != MethodFIFO && method != MethodLIFO {
		return nil, domain.ErrInvalidInput
	}
	candidates := make([]entity.Batch, 0, len(batches))
	for _, b := range batches {
		if b.VariantID != variantID || b.Voided || b.Available() <= 0 {
			continue
		}
		candidates = append(candidates, b)
	}
	sortCandidates(candidates, preferredLocationID, method)

	plan := make([]Allocation, 0, len(candidates))
	remaining := quantity
	for _, b := range candidates {
		if remaining == 0 {
			break
		}
		take := b.Available()
		if take > remaining {
			take = remaining
		}
		plan = append(plan, Allocation{Batch: b, Quantity: take})
		remaining -= take
	}
	return plan, nil
}

// AllocateAtLocation planifica tomando solo lotes de una ubicación exacta
// (traslados entre ubicaciones). El orden entre lotes es por fecha de compra
// ascendente; el costo viaja con el lote, así que el método de costeo no
// afecta la valuación de un traslado.
func AllocateAtLocation(batches []entity.Batch, variantID, locationID string, quantity int) ([]Allocation, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	candidates := make([]entity.Batch, 0, len(batches))
	available := 0
	for _, b := range batches {
		if b.VariantID != variantID || b.LocationID != locationID || b.Voided || b.Available() <= 0 {
			continue
		}
		candidates = append(candidates, b)
		available += b.Available()
	}
	if available < quantity {
		return nil, domain.ErrInsufficientStock
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PurchaseDate.Before(candidates[j].PurchaseDate)
	})

	plan := make([]Allocation, 0, len(candidates))
	remaining := quantity
	for _, b := range candidates {
		if remaining == 0 {
			break
		}
		take := b.Available()
		if take > remaining {
			take = remaining
		}
		plan = append(plan, Allocation{Batch: b, Quantity: take})
		remaining -= take
	}
	return plan, nil
}

func sortCandidates(candidates []entity.Batch, preferredLocationID, method string) {
	sort.SliceStable(candidates, func(i, j int) bool {
		bi, bj := candidates[i], candidates[j]
		if preferredLocationID != "" {
			pi := bi.LocationID == preferredLocationID
			pj := bj.LocationID == preferredLocationID
			if pi != pj {
				return pi
			}
		}
		if method == MethodLIFO {
			return bi.PurchaseDate.After(bj.PurchaseDate)
		}
		return bi.PurchaseDate.Before(bj.PurchaseDate)
	})
}
