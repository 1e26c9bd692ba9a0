package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/event"
	"github.com/dukasmart/partspos/internal/service"
	"github.com/dukasmart/partspos/pkg/ptr"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create and stay quiet above the threshold", func(t *testing.T) {
		productRepo := newFakeProductRepo()
		outboxRepo := newFakeOutboxRepo()
		svc := service.NewProductService(fakeDB{}, productRepo, outboxRepo)

		product, err := svc.CreateProduct(ctx, service.CreateProductParams{
			ProductName:  "Spark Plug",
			Category:     "Ignition",
			Type:         ptr.New("NGK"),
			Quantity:     20,
			PricePerUnit: 8.5,
			MinimumStock: 5,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, product.ID)

		got, err := productRepo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Spark Plug", got.ProductName)
		assert.Empty(t, outboxRepo.topics())
	})

	t.Run("Should emit a stock low event when created at the threshold", func(t *testing.T) {
		outboxRepo := newFakeOutboxRepo()
		svc := service.NewProductService(fakeDB{}, newFakeProductRepo(), outboxRepo)

		_, err := svc.CreateProduct(ctx, service.CreateProductParams{
			ProductName:  "Wiper Blade",
			Category:     "Exterior",
			Quantity:     5,
			PricePerUnit: 12,
			MinimumStock: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{event.TopicStockLow}, outboxRepo.topics())
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should overwrite every mutable field", func(t *testing.T) {
		product := testProduct(10, 2, 50)
		productRepo := newFakeProductRepo(product)
		svc := service.NewProductService(fakeDB{}, productRepo, newFakeOutboxRepo())

		updated, err := svc.UpdateProduct(ctx, service.UpdateProductParams{
			ID:           product.ID,
			ProductName:  "Brake Pad Set Pro",
			Category:     "Brakes",
			Quantity:     25,
			PricePerUnit: 60,
			MinimumStock: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, "Brake Pad Set Pro", updated.ProductName)
		assert.Equal(t, 25, updated.Quantity)
		assert.InDelta(t, 60, updated.PricePerUnit, 1e-9)
	})

	t.Run("Should emit a stock low event when the edit crosses the threshold", func(t *testing.T) {
		product := testProduct(10, 2, 50)
		outboxRepo := newFakeOutboxRepo()
		svc := service.NewProductService(fakeDB{}, newFakeProductRepo(product), outboxRepo)

		_, err := svc.UpdateProduct(ctx, service.UpdateProductParams{
			ID:           product.ID,
			ProductName:  product.ProductName,
			Category:     product.Category,
			Quantity:     2,
			PricePerUnit: product.PricePerUnit,
			MinimumStock: product.MinimumStock,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{event.TopicStockLow}, outboxRepo.topics())
	})

	t.Run("Should return not found for an unknown product", func(t *testing.T) {
		svc := service.NewProductService(fakeDB{}, newFakeProductRepo(), newFakeOutboxRepo())

		id, _ := uuid.NewV7()
		_, err := svc.UpdateProduct(ctx, service.UpdateProductParams{ID: id, ProductName: "x", Category: "y"})
		require.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})
}

func TestRestockProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should add to the quantity", func(t *testing.T) {
		product := testProduct(3, 2, 50)
		productRepo := newFakeProductRepo(product)
		svc := service.NewProductService(fakeDB{}, productRepo, newFakeOutboxRepo())

		restocked, err := svc.RestockProduct(ctx, product.ID, 7)
		require.NoError(t, err)
		assert.Equal(t, 10, restocked.Quantity)

		got, err := productRepo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Quantity)
	})

	t.Run("Should reject a non-positive amount", func(t *testing.T) {
		product := testProduct(3, 2, 50)
		svc := service.NewProductService(fakeDB{}, newFakeProductRepo(product), newFakeOutboxRepo())

		_, err := svc.RestockProduct(ctx, product.ID, 0)
		require.ErrorIs(t, err, apperr.InvalidRestockAmountErr)

		_, err = svc.RestockProduct(ctx, product.ID, -4)
		require.ErrorIs(t, err, apperr.InvalidRestockAmountErr)
	})

	t.Run("Should still alert when the restock leaves the product low", func(t *testing.T) {
		product := testProduct(1, 10, 50)
		outboxRepo := newFakeOutboxRepo()
		svc := service.NewProductService(fakeDB{}, newFakeProductRepo(product), outboxRepo)

		restocked, err := svc.RestockProduct(ctx, product.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, restocked.Quantity)
		assert.Equal(t, []string{event.TopicStockLow}, outboxRepo.topics())
	})

	t.Run("Should return not found for an unknown product", func(t *testing.T) {
		svc := service.NewProductService(fakeDB{}, newFakeProductRepo(), newFakeOutboxRepo())

		id, _ := uuid.NewV7()
		_, err := svc.RestockProduct(ctx, id, 5)
		require.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})
}

func TestListPublicProducts(t *testing.T) {
	ctx := context.Background()

	inStock := testProduct(4, 2, 50)
	outOfStock := testProduct(0, 2, 30)
	outOfStock.ProductName = "Clutch Kit"
	svc := service.NewProductService(fakeDB{}, newFakeProductRepo(inStock, outOfStock), newFakeOutboxRepo())

	products, err := svc.ListPublicProducts(ctx, service.ListProductsParams{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, inStock.ID, products[0].ID)
	assert.Equal(t, inStock.ProductName, products[0].ProductName)
}
