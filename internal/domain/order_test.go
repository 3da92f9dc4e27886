package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Name: "Ceramic wax", Price: 42.99, Quantity: 1},
		{ProductID: 2, Name: "Microfiber towel", Price: 8.99, Quantity: 2},
	}

	assert.InDelta(t, 60.97, ComputeTotal(items), 0.001)
}

func TestComputeTotal_Empty(t *testing.T) {
	assert.Zero(t, ComputeTotal(nil))
}

func TestCheckOrderTransition(t *testing.T) {
	assert.NoError(t, CheckOrderTransition(OrderPending, OrderReady))
	assert.NoError(t, CheckOrderTransition(OrderReady, OrderCollected))
	assert.NoError(t, CheckOrderTransition(OrderPending, OrderCancelled))
	assert.NoError(t, CheckOrderTransition(OrderReady, OrderCancelled))

	assert.ErrorIs(t, CheckOrderTransition(OrderPending, OrderCollected), ErrInvalidOrderTransition)
	assert.ErrorIs(t, CheckOrderTransition(OrderCollected, OrderCancelled), ErrInvalidOrderTransition)
	assert.ErrorIs(t, CheckOrderTransition(OrderCancelled, OrderReady), ErrInvalidOrderTransition)
	assert.ErrorIs(t, CheckOrderTransition(OrderPending, OrderStatus("shipped")), ErrInvalidOrderTransition)
}
