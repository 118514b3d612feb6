package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderLifecycle(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}

	require.NoError(t, b.Transition(ActorProvider, BookingStatusConfirmed))
	require.NoError(t, b.Transition(ActorProvider, BookingStatusInProgress))
	require.NoError(t, b.Transition(ActorProvider, BookingStatusCompleted))
	assert.True(t, b.IsTerminal())
}

func TestProviderCanCompleteWithoutStarting(t *testing.T) {
	b := &Booking{Status: BookingStatusConfirmed}
	assert.NoError(t, b.Transition(ActorProvider, BookingStatusCompleted))
}

func TestProviderCannotSkipConfirmation(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}

	err := b.Transition(ActorProvider, BookingStatusInProgress)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Equal(t, BookingStatusPending, b.Status)
}

func TestCustomerCancellation(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		allowed bool
	}{
		{"pending", BookingStatusPending, true},
		{"confirmed", BookingStatusConfirmed, true},
		{"in_progress", BookingStatusInProgress, false},
		{"completed", BookingStatusCompleted, false},
		{"cancelled", BookingStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			err := b.Transition(ActorCustomer, BookingStatusCancelled)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrIllegalTransition)
			}
		})
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	for _, actor := range []Actor{ActorCustomer, ActorProvider, ActorAdmin, ActorSystem} {
		for _, terminal := range []BookingStatus{BookingStatusCompleted, BookingStatusCancelled} {
			b := &Booking{Status: terminal}
			for _, to := range []BookingStatus{
				BookingStatusPending, BookingStatusConfirmed,
				BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled,
			} {
				// Admins may reverse a completed booking when resolving disputes
				if actor == ActorAdmin && terminal == BookingStatusCompleted && to == BookingStatusCancelled {
					continue
				}
				assert.False(t, b.CanTransition(actor, to),
					"%s should not move %s booking to %s", actor, terminal, to)
			}
		}
	}
}

func TestAdminMayCancelCompletedBooking(t *testing.T) {
	b := &Booking{Status: BookingStatusCompleted}

	require.NoError(t, b.Cancel(ActorAdmin, "dispute resolved in customer's favor"))
	assert.Equal(t, BookingStatusCancelled, b.Status)
	require.NotNil(t, b.CancelledBy)
	assert.Equal(t, ActorAdmin, *b.CancelledBy)
}

func TestCancelRecordsActorAndReason(t *testing.T) {
	b := &Booking{Status: BookingStatusConfirmed}

	require.NoError(t, b.Cancel(ActorProvider, "fully booked"))
	assert.Equal(t, BookingStatusCancelled, b.Status)
	require.NotNil(t, b.CancelledBy)
	assert.Equal(t, ActorProvider, *b.CancelledBy)
	require.NotNil(t, b.CancellationReason)
	assert.Equal(t, "fully booked", *b.CancellationReason)
}

func TestCancelWithoutReasonLeavesReasonNil(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}

	require.NoError(t, b.Cancel(ActorCustomer, ""))
	assert.Nil(t, b.CancellationReason)
}

func TestSystemMayOnlyResolvePending(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}
	assert.True(t, b.CanTransition(ActorSystem, BookingStatusCancelled))

	b.Status = BookingStatusConfirmed
	assert.False(t, b.CanTransition(ActorSystem, BookingStatusCancelled))
}

func TestInitialPaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentStatusCODPending, InitialPaymentStatus(PaymentMethodCOD))
	assert.Equal(t, PaymentStatusPending, InitialPaymentStatus(PaymentMethodPayPal))
}
