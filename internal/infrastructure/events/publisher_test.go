package events

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orders-backend/internal/domain"
)

func TestPublisher_DisabledWithoutBrokers(t *testing.T) {
	for _, csv := range []string{"", "  ", ", ,"} {
		p := NewPublisher(csv, "order-events")
		assert.False(t, p.Enabled(), "brokers=%q", csv)

		// publishes are no-ops, not errors
		o := &domain.Order{ID: "o1", Status: domain.OrderPending, TotalAmount: decimal.NewFromInt(35), TotalItems: 5}
		require.NoError(t, p.OrderCreated(context.Background(), o))
		require.NoError(t, p.OrderStatusChanged(context.Background(), o, domain.OrderPending))
		require.NoError(t, p.Close())
	}
}

func TestPublisher_EnabledWithBrokers(t *testing.T) {
	p := NewPublisher("localhost:9092, localhost:9093", "order-events")
	assert.True(t, p.Enabled())
	require.NoError(t, p.Close())
}
