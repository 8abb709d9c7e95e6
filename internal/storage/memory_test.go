package storage

import (
	"context"
	"testing"

	"shop_service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_CreateUser_Duplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewMemoryStorage()

	_, err := st.CreateUser(ctx, models.User{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = st.CreateUser(ctx, models.User{Username: "alice", Email: "other@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = st.CreateUser(ctx, models.User{Username: "bob", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = st.CreateUser(ctx, models.User{Username: "bob", Email: "b@x.com"})
	assert.NoError(t, err)
}

func TestMemoryStorage_UpdateUser_StaleWriteRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewMemoryStorage()

	created, err := st.CreateUser(ctx, models.User{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	first := created
	first.IsEmailVerified = true
	_, err = st.UpdateUser(ctx, first)
	require.NoError(t, err)

	// Second writer still holds the old version.
	second := created
	second.ResetPasswordToken = "tok"
	_, err = st.UpdateUser(ctx, second)
	assert.ErrorIs(t, err, ErrConflict)

	stored, err := st.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, stored.IsEmailVerified)
	assert.Empty(t, stored.ResetPasswordToken)
}

func TestMemoryStorage_UserLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewMemoryStorage()

	_, err := st.UserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.UserByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := st.CreateUser(ctx, models.User{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	byName, err := st.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := st.UserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestMemoryStorage_ListProducts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewMemoryStorage()

	for _, p := range []models.Product{
		{Name: "Red Mug", Description: "ceramic mug", Price: 5, Quantity: 10},
		{Name: "Blue Mug", Description: "ceramic mug", Price: 6, Quantity: 4},
		{Name: "Laptop", Description: "portable computer", Price: 900, Quantity: 2},
	} {
		_, err := st.CreateProduct(ctx, p)
		require.NoError(t, err)
	}

	page, err := st.ListProducts(ctx, 1, 10, "mug")
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, int64(1), page.TotalPages)

	page, err = st.ListProducts(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.Equal(t, int64(1), page.CurrentPage)

	page, err = st.ListProducts(ctx, 3, 2, "")
	require.NoError(t, err)
	assert.Empty(t, page.Products)
}

func TestMemoryStorage_ProductLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewMemoryStorage()

	created, err := st.CreateProduct(ctx, models.Product{Name: "Mug", Description: "d", Price: 5, Quantity: 1})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	created.Price = 7
	updated, err := st.UpdateProduct(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, float64(7), updated.Price)

	require.NoError(t, st.DeleteProduct(ctx, created.ID))

	_, err = st.ProductByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.DeleteProduct(ctx, created.ID), ErrNotFound)
}

func TestMemoryStorage_OrderLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewMemoryStorage()

	created, err := st.CreateOrder(ctx, models.Order{Username: "alice", TotalAmount: 12})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	orders, err := st.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	created.TotalAmount = 20
	updated, err := st.UpdateOrder(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, float64(20), updated.TotalAmount)

	require.NoError(t, st.DeleteOrder(ctx, created.ID))
	_, err = st.OrderByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
