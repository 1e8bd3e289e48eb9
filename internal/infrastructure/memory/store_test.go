package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-ledger/internal/application/ports"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

func seedBatch(t *testing.T, store *memory.Store, id string, remaining int) {
	t.Helper()
	require.NoError(t, store.Batches().Create(&entity.Batch{
		ID:                id,
		VariantID:         "var-1",
		LocationID:        "loc-1",
		QuantityRemaining: remaining,
		UnitCost:          decimal.NewFromInt(10),
		PurchaseDate:      time.Now(),
	}))
}

func TestRun_CommitPublicaTodo(t *testing.T) {
	store := memory.NewStore()
	seedBatch(t, store, "b1", 5)

	err := store.Run(context.Background(), func(tx ports.LedgerTx) error {
		batch, err := tx.Batches.GetByID("b1")
		if err != nil {
			return err
		}
		batch.QuantityRemaining -= 2
		if err := tx.Batches.Update(batch); err != nil {
			return err
		}
		return tx.Movements.Create(&entity.StockMovement{
			ID: "m1", VariantID: "var-1", BatchID: "b1", LocationID: "loc-1",
			Type: entity.MovementTypeOUT, Quantity: 2,
			ReferenceType: entity.ReferenceOrder, ReferenceID: "o1",
		})
	})
	require.NoError(t, err)

	batch, err := store.Batches().GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, 3, batch.QuantityRemaining)
	movements, err := store.Movements().List()
	require.NoError(t, err)
	assert.Len(t, movements, 1)
}

func TestRun_ErrorDescartaTodaMutacion(t *testing.T) {
	store := memory.NewStore()
	seedBatch(t, store, "b1", 5)
	boom := errors.New("boom")

	err := store.Run(context.Background(), func(tx ports.LedgerTx) error {
		batch, err := tx.Batches.GetByID("b1")
		if err != nil {
			return err
		}
		batch.QuantityRemaining = 0
		if err := tx.Batches.Update(batch); err != nil {
			return err
		}
		if err := tx.Movements.Create(&entity.StockMovement{ID: "m1"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Nada de la transacción fallida es observable.
	batch, err := store.Batches().GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, 5, batch.QuantityRemaining)
	movements, err := store.Movements().List()
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestRun_LecturaNoVeElClonAjeno(t *testing.T) {
	store := memory.NewStore()
	seedBatch(t, store, "b1", 5)

	// La copia devuelta por un GetByID vivo no comparte memoria con el estado:
	// mutarla no cambia nada hasta pasar por Update dentro de Run.
	batch, err := store.Batches().GetByID("b1")
	require.NoError(t, err)
	batch.QuantityRemaining = 999

	again, err := store.Batches().GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.QuantityRemaining)
}

func TestJournalRepo_RechazaAsientoDesbalanceado(t *testing.T) {
	store := memory.NewStore()

	err := store.Run(context.Background(), func(tx ports.LedgerTx) error {
		return tx.Journal.Create(&entity.JournalEntry{
			ID: "j1",
			Items: []entity.JournalEntryItem{
				entity.Debit(entity.AccountCash, decimal.NewFromInt(100)),
				entity.Credit(entity.AccountRevenue, decimal.NewFromInt(90)),
			},
		})
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	entries, err := store.Journal().List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSnapshot_RoundTripPreservaIdsYPeriodo(t *testing.T) {
	store := memory.NewStore()
	seedBatch(t, store, "b1", 5)
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", Name: "Camiseta", SellingPrice: decimal.NewFromInt(20), Active: true,
	}))
	require.NoError(t, store.Variants().Create(&entity.Variant{
		ID: "var-1", ProductID: "p1", SKU: "CAM-M-AZUL",
	}))
	require.NoError(t, store.Period().Set(repository.PeriodLock{Locked: true, Reason: "cierre"}))

	snap := store.Snapshot()
	require.Equal(t, repository.SnapshotSchemaVersion, snap.SchemaVersion)

	restored := memory.NewStore()
	restored.Restore(snap)

	batch, err := restored.Batches().GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, 5, batch.QuantityRemaining)
	assert.True(t, batch.UnitCost.Equal(decimal.NewFromInt(10)))

	variant, err := restored.Variants().GetBySKU("CAM-M-AZUL")
	require.NoError(t, err)
	assert.Equal(t, "var-1", variant.ID)

	lock, err := restored.Period().Get()
	require.NoError(t, err)
	assert.True(t, lock.Locked)
	assert.Equal(t, "cierre", lock.Reason)
}

func TestSnapshot_NoCompartePunteros(t *testing.T) {
	store := memory.NewStore()
	seedBatch(t, store, "b1", 5)

	snap := store.Snapshot()
	snap.Batches[0].QuantityRemaining = 999

	batch, err := store.Batches().GetByID("b1")
	require.NoError(t, err)
	assert.Equal(t, 5, batch.QuantityRemaining)
}
