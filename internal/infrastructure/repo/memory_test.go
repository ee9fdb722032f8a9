package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orders-backend/internal/domain"
)

func seedOrder(id string, status domain.OrderStatus, createdAt time.Time) *domain.Order {
	return &domain.Order{
		ID:          id,
		TotalAmount: decimal.NewFromInt(10),
		TotalItems:  1,
		Status:      status,
		Items: []domain.OrderItem{
			{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10), Name: "Widget"},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemoryRepo_CreateGetRoundTrip(t *testing.T) {
	r := NewMemoryOrderRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, r.Create(ctx, seedOrder("o1", domain.OrderPending, now)))

	got, ok, err := r.Get(ctx, "o1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "o1", got.ID)
	assert.Equal(t, domain.OrderPending, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p1", got.Items[0].ProductID)
	assert.Empty(t, got.Items[0].Name, "item names are never persisted")

	_, ok, err = r.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRepo_ListPaginationAndFilter(t *testing.T) {
	r := NewMemoryOrderRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 25; i++ {
		o := seedOrder(fmt.Sprintf("pending-%02d", i), domain.OrderPending, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, r.Create(ctx, o))
	}
	for i := 0; i < 5; i++ {
		o := seedOrder(fmt.Sprintf("paid-%02d", i), domain.OrderPaid, base.Add(time.Hour))
		require.NoError(t, r.Create(ctx, o))
	}

	pending := domain.OrderPending
	page, err := r.List(ctx, 2, 10, &pending)
	require.NoError(t, err)
	assert.Len(t, page, 10)
	for _, o := range page {
		assert.Equal(t, domain.OrderPending, o.Status)
		assert.Nil(t, o.Items, "list rows carry no items")
	}

	total, err := r.Count(ctx, &pending)
	require.NoError(t, err)
	assert.Equal(t, 25, total)

	total, err = r.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 30, total)

	last, err := r.List(ctx, 3, 10, &pending)
	require.NoError(t, err)
	assert.Len(t, last, 5)

	beyond, err := r.List(ctx, 9, 10, &pending)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestMemoryRepo_ListOrdersNewestFirst(t *testing.T) {
	r := NewMemoryOrderRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, r.Create(ctx, seedOrder("old", domain.OrderPending, base)))
	require.NoError(t, r.Create(ctx, seedOrder("new", domain.OrderPending, base.Add(time.Minute))))

	page, err := r.List(ctx, 1, 10, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "new", page[0].ID)
	assert.Equal(t, "old", page[1].ID)
}

func TestMemoryRepo_UpdateStatus(t *testing.T) {
	r := NewMemoryOrderRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, r.Create(ctx, seedOrder("o1", domain.OrderPending, now)))

	later := now.Add(time.Minute)
	updated, err := r.UpdateStatus(ctx, "o1", domain.OrderPaid, later)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt)

	got, ok, err := r.Get(ctx, "o1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.OrderPaid, got.Status)

	_, err = r.UpdateStatus(ctx, "missing", domain.OrderPaid, later)
	assert.Error(t, err)
}

func TestMemoryRepo_StoredStateNotAliased(t *testing.T) {
	r := NewMemoryOrderRepo()
	ctx := context.Background()
	o := seedOrder("o1", domain.OrderPending, time.Now().UTC())
	require.NoError(t, r.Create(ctx, o))

	o.Status = domain.OrderCancelled
	o.Items[0].Quantity = 99

	got, ok, err := r.Get(ctx, "o1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.OrderPending, got.Status)
	assert.Equal(t, 1, got.Items[0].Quantity)
}
