package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, status.Valid(), status)
	}
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusWaiting, true},
		{OrderStatusPending, OrderStatusCanceled, true},
		{OrderStatusPending, OrderStatusComplete, false},
		{OrderStatusPending, OrderStatusDeliveredToCourier, false},
		{OrderStatusWaiting, OrderStatusPending, true},
		{OrderStatusWaiting, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusDeliveredToCourier, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusDeliveredToCourier, OrderStatusComplete, true},
		{OrderStatusDeliveredToCourier, OrderStatusProcessing, false},
		{OrderStatusComplete, OrderStatusCanceled, false},
		{OrderStatusComplete, OrderStatusPending, false},
		{OrderStatusCanceled, OrderStatusPending, false},
		{OrderStatusCanceled, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatusSameStatusIsAllowed(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, status.CanTransitionTo(status), status)
	}
	assert.False(t, OrderStatus("bogus").CanTransitionTo("bogus"))
}

func TestTransitionError(t *testing.T) {
	var err error = &TransitionError{From: OrderStatusComplete, To: OrderStatusPending}

	var target *TransitionError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, OrderStatusComplete, target.From)
	assert.Contains(t, err.Error(), "complete")
	assert.Contains(t, err.Error(), "pending")
}

func TestDeleteModeValid(t *testing.T) {
	assert.True(t, DeleteModeSoft.Valid())
	assert.True(t, DeleteModeRestore.Valid())
	assert.True(t, DeleteModePermanent.Valid())
	assert.False(t, DeleteMode("purge").Valid())
}

func TestPaginationNormalize(t *testing.T) {
	assert.Equal(t, PaginationQuery{Limit: DefaultPageLimit}, PaginationQuery{}.Normalize())
	assert.Equal(t, PaginationQuery{Limit: MaxPageLimit, Offset: 10}, PaginationQuery{Limit: 5000, Offset: 10}.Normalize())
	assert.Equal(t, PaginationQuery{Limit: 20}, PaginationQuery{Limit: 20, Offset: -3}.Normalize())
}
