package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransition_DeliveryChain(t *testing.T) {
	chain := []BookingStatus{StatusInProgress, StatusPicked, StatusOutForDelivery, StatusDelivered}

	current := StatusBooked
	for _, next := range chain {
		require.NoError(t, CheckTransition(current, next, FulfillmentDelivery),
			"transition %s -> %s must be allowed", current, next)
		current = next
	}
}

func TestCheckTransition_OnsiteChain(t *testing.T) {
	require.NoError(t, CheckTransition(StatusBooked, StatusInProgress, FulfillmentOnsite))
	require.NoError(t, CheckTransition(StatusInProgress, StatusCompleted, FulfillmentOnsite))
}

func TestCheckTransition_RejectsSkippedStates(t *testing.T) {
	tests := []struct {
		name        string
		from, to    BookingStatus
		fulfillment FulfillmentType
	}{
		{"booked to delivered directly", StatusBooked, StatusDelivered, FulfillmentDelivery},
		{"booked to completed directly", StatusBooked, StatusCompleted, FulfillmentOnsite},
		{"in_progress to out_for_delivery", StatusInProgress, StatusOutForDelivery, FulfillmentDelivery},
		{"picked to delivered", StatusPicked, StatusDelivered, FulfillmentDelivery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.from, tt.to, tt.fulfillment)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestCheckTransition_RejectsCrossFulfillment(t *testing.T) {
	// onsite бронирование не может попасть в delivery-цепочку
	err := CheckTransition(StatusInProgress, StatusPicked, FulfillmentOnsite)
	assert.ErrorIs(t, err, ErrWrongFulfillment)

	// delivery бронирование завершается статусом delivered, не completed
	err = CheckTransition(StatusInProgress, StatusCompleted, FulfillmentDelivery)
	assert.ErrorIs(t, err, ErrWrongFulfillment)
}

func TestCheckTransition_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range TerminalStatuses {
		err := CheckTransition(terminal, StatusInProgress, FulfillmentDelivery)
		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", terminal)
	}
}

func TestCheckTransition_CancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []BookingStatus{StatusBooked, StatusInProgress, StatusPicked, StatusOutForDelivery} {
		assert.NoError(t, CheckTransition(from, StatusCancelled, FulfillmentDelivery), "from %s", from)
	}
}

func TestValidStatus_RescheduledIsTimelineOnly(t *testing.T) {
	assert.False(t, ValidStatus(StatusRescheduled))
	assert.True(t, ValidStatus(StatusBooked))
	assert.False(t, ValidStatus(BookingStatus("unknown")))
}
