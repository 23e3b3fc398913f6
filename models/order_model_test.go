package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderComplete(t *testing.T) {
	order := Order{Status: OrderPending, PaymentStatus: PaymentPending}

	err := order.Complete("txn-123")
	assert.NoError(t, err)
	assert.Equal(t, OrderCompleted, order.Status)
	assert.Equal(t, PaymentPaid, order.PaymentStatus)
	assert.Equal(t, "txn-123", order.TransactionID)
}

func TestOrderCompleteTwice(t *testing.T) {
	order := Order{Status: OrderPending}
	assert.NoError(t, order.Complete("txn-1"))

	err := order.Complete("txn-2")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, "txn-1", order.TransactionID)
}

func TestOrderCancel(t *testing.T) {
	order := Order{Status: OrderPending}

	err := order.Cancel("changed my mind")
	assert.NoError(t, err)
	assert.Equal(t, OrderCancelled, order.Status)
	assert.Equal(t, "changed my mind", order.Notes)
}

func TestOrderCancelCompleted(t *testing.T) {
	order := Order{Status: OrderCompleted}

	err := order.Cancel("too late")
	assert.ErrorIs(t, err, ErrCannotCancelCompleted)
	assert.Equal(t, OrderCompleted, order.Status)
}

func TestOrderRefund(t *testing.T) {
	order := Order{Status: OrderCompleted, PaymentStatus: PaymentPaid}
	at := time.Now()

	err := order.Refund("requested", at)
	assert.NoError(t, err)
	assert.Equal(t, OrderRefunded, order.Status)
	assert.Equal(t, PaymentRefunded, order.PaymentStatus)
	assert.Equal(t, "requested", order.RefundReason)
	assert.NotNil(t, order.RefundedAt)
	assert.Equal(t, at, *order.RefundedAt)
}

func TestOrderRefundRequiresCompleted(t *testing.T) {
	for _, status := range []string{OrderPending, OrderCancelled, OrderRefunded} {
		order := Order{Status: status}
		err := order.Refund("nope", time.Now())
		assert.ErrorIs(t, err, ErrOnlyCompletedRefundable, "status %s should not be refundable", status)
		assert.Equal(t, status, order.Status)
	}
}

func TestOrderTerminalStatesAreFinal(t *testing.T) {
	for _, status := range []string{OrderCancelled, OrderRefunded} {
		order := Order{Status: status}

		assert.ErrorIs(t, order.Complete("txn"), ErrOrderTerminal, "complete from %s", status)
		assert.ErrorIs(t, order.Cancel("again"), ErrOrderTerminal, "cancel from %s", status)
		assert.Equal(t, status, order.Status)
	}
}
