package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	valid := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusNoShow},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusNoShow},
	}
	for _, tc := range valid {
		assert.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	invalid := []struct{ from, to Status }{
		{StatusCompleted, StatusConfirmed},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusConfirmed},
		{StatusCancelled, StatusCompleted},
		{StatusNoShow, StatusPending},
		{StatusConfirmed, StatusPending},
		{StatusInProgress, StatusPending},
	}
	for _, tc := range invalid {
		err := CanTransition(tc.from, tc.to)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransition_SameStatusIsNoop(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusCompleted, StatusCancelled} {
		assert.NoError(t, CanTransition(s, s))
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusNoShow))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.False(t, IsTerminal(StatusInProgress))
}

func TestBlocks(t *testing.T) {
	// cancelado e não compareceu liberam a janela; o resto ocupa
	assert.False(t, Blocks(StatusCancelled))
	assert.False(t, Blocks(StatusNoShow))
	assert.True(t, Blocks(StatusPending))
	assert.True(t, Blocks(StatusConfirmed))
	assert.True(t, Blocks(StatusInProgress))
	assert.True(t, Blocks(StatusCompleted))
}

func TestApplyStatus_StampsTimestamps(t *testing.T) {
	now := time.Date(2030, 6, 3, 10, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusConfirmed)}
	require.NoError(t, ApplyStatus(ap, StatusCompleted, now))
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)

	ap2 := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, ApplyStatus(ap2, StatusCancelled, now))
	require.NotNil(t, ap2.CancelledAt)
	assert.Equal(t, now, *ap2.CancelledAt)
}

func TestCancel_Idempotent(t *testing.T) {
	now := time.Date(2030, 6, 3, 10, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)

	// segundo cancelamento não muda nada
	require.NoError(t, Cancel(ap, later))
	assert.Equal(t, now, *ap.CancelledAt)
}

func TestPaymentValidators(t *testing.T) {
	assert.True(t, IsValidPaymentStatus(PaymentPending))
	assert.True(t, IsValidPaymentStatus(PaymentPaid))
	assert.True(t, IsValidPaymentStatus(PaymentRefunded))
	assert.False(t, IsValidPaymentStatus("QUITADO"))

	assert.True(t, IsValidPaymentMethod(PaymentPix))
	assert.True(t, IsValidPaymentMethod(PaymentCash))
	assert.True(t, IsValidPaymentMethod(PaymentCard))
	assert.True(t, IsValidPaymentMethod(PaymentDebit))
	assert.False(t, IsValidPaymentMethod("CHEQUE"))
}

func TestBuildLineItems_FreezesPriceAndDuration(t *testing.T) {
	resolved := map[uint]*models.Service{
		1: {ID: 1, DurationMin: 60, Price: 100},
		2: {ID: 2, DurationMin: 30, Price: 50},
	}

	// preço acordado difere do catálogo (desconto)
	items, durationMin, total := BuildLineItems(
		[]RequestedService{
			{ServiceID: 1, Price: 90},
			{ServiceID: 2, Price: 50},
		},
		resolved,
	)

	require.Len(t, items, 2)
	assert.Equal(t, 90, durationMin)
	assert.Equal(t, 140.0, total)
	assert.Equal(t, 90.0, items[0].Price)
	assert.Equal(t, 60, items[0].DurationMin)
}
