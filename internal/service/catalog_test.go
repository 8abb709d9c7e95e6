package service

import (
	"context"
	"testing"

	"shop_service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCatalog_ProductNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Product(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = f.svc.UpdateProduct(ctx, models.Product{ID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, f.svc.DeleteProduct(ctx, primitive.NewObjectID()), ErrProductNotFound)
}

func TestCatalog_ListProductsClampsPaging(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CreateProduct(ctx, models.Product{Name: "Mug", Description: "d", Price: 5, Quantity: 1})
	require.NoError(t, err)

	page, err := f.svc.ListProducts(ctx, 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.CurrentPage)
	assert.Len(t, page.Products, 1)
}

func TestCatalog_OrderFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	product, err := f.svc.CreateProduct(ctx, models.Product{Name: "Mug", Description: "d", Price: 5, Quantity: 3})
	require.NoError(t, err)

	order, err := f.svc.CreateOrder(ctx, models.Order{
		Username:    "alice",
		Products:    []models.OrderItem{{ProductID: product.ID, Quantity: 2}},
		TotalAmount: 10,
	})
	require.NoError(t, err)
	assert.False(t, order.CreatedAt.IsZero())

	order.TotalAmount = 15
	updated, err := f.svc.UpdateOrder(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, float64(15), updated.TotalAmount)
	assert.Equal(t, "alice", updated.Username)

	_, err = f.svc.Order(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
