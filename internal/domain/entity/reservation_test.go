package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

func TestCanTransition_DesdeVivos(t *testing.T) {
	// pending puede ir a cualquier confirmación o estado terminal.
	for _, to := range []string{
		entity.ReservationConfirmedPrepaid,
		entity.ReservationConfirmedNoPrepay,
		entity.ReservationConfirmedPaidFully,
		entity.ReservationCompleted,
		entity.ReservationCancelled,
		entity.ReservationExpired,
	} {
		assert.True(t, entity.CanTransition(entity.ReservationPending, to), "pending -> %s", to)
	}

	// confirmed_paid_fully ya no puede expirar.
	assert.True(t, entity.CanTransition(entity.ReservationConfirmedPaidFully, entity.ReservationCompleted))
	assert.True(t, entity.CanTransition(entity.ReservationConfirmedPaidFully, entity.ReservationCancelled))
	assert.False(t, entity.CanTransition(entity.ReservationConfirmedPaidFully, entity.ReservationExpired))
}

func TestCanTransition_TerminalesSonFinales(t *testing.T) {
	terminals := []string{
		entity.ReservationCompleted,
		entity.ReservationCancelled,
		entity.ReservationExpired,
	}
	targets := []string{
		entity.ReservationPending,
		entity.ReservationConfirmedPrepaid,
		entity.ReservationCompleted,
		entity.ReservationCancelled,
		entity.ReservationExpired,
	}
	for _, from := range terminals {
		assert.True(t, entity.IsTerminalReservationStatus(from))
		for _, to := range targets {
			assert.False(t, entity.CanTransition(from, to), "%s -> %s debe rechazarse", from, to)
		}
	}
}

func TestPinnedQuantity(t *testing.T) {
	r := entity.Reservation{
		ReservedBatches: []entity.ReservedBatch{
			{BatchID: "b1", Quantity: 3},
			{BatchID: "b2", Quantity: 2},
		},
	}
	assert.Equal(t, 5, r.PinnedQuantity())
	assert.Equal(t, 0, entity.Reservation{}.PinnedQuantity())
}
