package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/event"
	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/service"
	"github.com/dukasmart/partspos/pkg/ptr"
)

func testProduct(quantity, minimumStock int, price float64) model.Product {
	id, _ := uuid.NewV7()
	now := time.Now()
	return model.Product{
		ID:           id,
		ProductName:  "Brake Pad Set",
		Category:     "Brakes",
		Quantity:     quantity,
		PricePerUnit: price,
		MinimumStock: minimumStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testStaff() model.Principal {
	id, _ := uuid.NewV7()
	return model.Principal{
		ID:    id,
		Name:  "Jane",
		Email: "jane@example.com",
		Role:  model.RoleStaff,
	}
}

func TestCreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("Should decrement stock and snapshot the product", func(t *testing.T) {
		product := testProduct(10, 2, 50)
		productRepo := newFakeProductRepo(product)
		saleRepo := newFakeSaleRepo()
		outboxRepo := newFakeOutboxRepo()
		svc := service.NewSaleService(fakeDB{}, saleRepo, productRepo, outboxRepo)

		staff := testStaff()
		sale, err := svc.CreateSale(ctx, service.CreateSaleParams{
			ProductID:    product.ID,
			QuantitySold: 3,
			Staff:        staff,
		})
		require.NoError(t, err)

		assert.Equal(t, product.ID, sale.ProductID)
		assert.Equal(t, "Brake Pad Set", sale.ProductName)
		assert.Equal(t, 3, sale.QuantitySold)
		assert.InDelta(t, 150, sale.SalePrice, 1e-9)
		assert.Equal(t, staff.ID, sale.StaffID)
		assert.Equal(t, "Jane", sale.StaffName)

		got, err := productRepo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.Quantity)

		assert.Equal(t, []string{event.TopicSaleRecorded}, outboxRepo.topics())
	})

	t.Run("Should honor the selling price override", func(t *testing.T) {
		product := testProduct(10, 2, 50)
		svc := service.NewSaleService(fakeDB{}, newFakeSaleRepo(), newFakeProductRepo(product), newFakeOutboxRepo())

		sale, err := svc.CreateSale(ctx, service.CreateSaleParams{
			ProductID:           product.ID,
			QuantitySold:        2,
			SellingPricePerUnit: ptr.New(40.0),
			Staff:               testStaff(),
		})
		require.NoError(t, err)
		assert.InDelta(t, 80, sale.SalePrice, 1e-9)
	})

	t.Run("Should reject a sale exceeding stock and leave state untouched", func(t *testing.T) {
		product := testProduct(3, 0, 50)
		productRepo := newFakeProductRepo(product)
		saleRepo := newFakeSaleRepo()
		outboxRepo := newFakeOutboxRepo()
		svc := service.NewSaleService(fakeDB{}, saleRepo, productRepo, outboxRepo)

		_, err := svc.CreateSale(ctx, service.CreateSaleParams{
			ProductID:    product.ID,
			QuantitySold: 5,
			Staff:        testStaff(),
		})
		require.ErrorIs(t, err, apperr.InsufficientStockErr)

		got, err := productRepo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Quantity)
		assert.Empty(t, outboxRepo.topics())

		sales, err := saleRepo.ListAllSales(ctx)
		require.NoError(t, err)
		assert.Empty(t, sales)
	})

	t.Run("Should emit a stock low event when the sale crosses the threshold", func(t *testing.T) {
		product := testProduct(6, 5, 50)
		outboxRepo := newFakeOutboxRepo()
		svc := service.NewSaleService(fakeDB{}, newFakeSaleRepo(), newFakeProductRepo(product), outboxRepo)

		_, err := svc.CreateSale(ctx, service.CreateSaleParams{
			ProductID:    product.ID,
			QuantitySold: 2,
			Staff:        testStaff(),
		})
		require.NoError(t, err)

		assert.Equal(t, []string{event.TopicSaleRecorded, event.TopicStockLow}, outboxRepo.topics())
	})

	t.Run("Should return not found for an unknown product", func(t *testing.T) {
		svc := service.NewSaleService(fakeDB{}, newFakeSaleRepo(), newFakeProductRepo(), newFakeOutboxRepo())

		id, _ := uuid.NewV7()
		_, err := svc.CreateSale(ctx, service.CreateSaleParams{
			ProductID:    id,
			QuantitySold: 1,
			Staff:        testStaff(),
		})
		require.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})
}

func TestUpdateSale(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, productQty, soldQty int) (*fakeProductRepo, *fakeSaleRepo, model.Product, model.Sale) {
		t.Helper()
		product := testProduct(productQty, 0, 50)
		productRepo := newFakeProductRepo(product)
		saleRepo := newFakeSaleRepo()
		svc := service.NewSaleService(fakeDB{}, saleRepo, productRepo, newFakeOutboxRepo())

		sale, err := svc.CreateSale(ctx, service.CreateSaleParams{
			ProductID:    product.ID,
			QuantitySold: soldQty,
			Staff:        testStaff(),
		})
		require.NoError(t, err)
		return productRepo, saleRepo, product, sale
	}

	t.Run("Should compensate stock by the quantity delta", func(t *testing.T) {
		productRepo, saleRepo, product, sale := seed(t, 10, 4)
		svc := service.NewSaleService(fakeDB{}, saleRepo, productRepo, newFakeOutboxRepo())

		updated, err := svc.UpdateSale(ctx, service.UpdateSaleParams{
			ID:           sale.ID,
			QuantitySold: 1,
			SalePrice:    50,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.QuantitySold)
		assert.InDelta(t, 50, updated.SalePrice, 1e-9)

		// 10 - 4 = 6 after the sale, +3 back on the edit.
		got, err := productRepo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.Quantity)
	})

	t.Run("Should allow an edit to drive stock negative", func(t *testing.T) {
		productRepo, saleRepo, product, sale := seed(t, 5, 4)
		svc := service.NewSaleService(fakeDB{}, saleRepo, productRepo, newFakeOutboxRepo())

		_, err := svc.UpdateSale(ctx, service.UpdateSaleParams{
			ID:           sale.ID,
			QuantitySold: 8,
			SalePrice:    400,
		})
		require.NoError(t, err)

		got, err := productRepo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, -3, got.Quantity)
	})

	t.Run("Should skip compensation when the product is gone", func(t *testing.T) {
		productRepo, saleRepo, product, sale := seed(t, 10, 4)
		require.NoError(t, productRepo.DeleteProduct(ctx, product.ID))
		svc := service.NewSaleService(fakeDB{}, saleRepo, productRepo, newFakeOutboxRepo())

		updated, err := svc.UpdateSale(ctx, service.UpdateSaleParams{
			ID:           sale.ID,
			QuantitySold: 1,
			SalePrice:    50,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.QuantitySold)
	})

	t.Run("Should return not found for an unknown sale", func(t *testing.T) {
		svc := service.NewSaleService(fakeDB{}, newFakeSaleRepo(), newFakeProductRepo(), newFakeOutboxRepo())

		id, _ := uuid.NewV7()
		_, err := svc.UpdateSale(ctx, service.UpdateSaleParams{ID: id, QuantitySold: 1, SalePrice: 10})
		require.ErrorIs(t, err, apperr.SaleNotFoundErr)
	})
}

func TestDeleteSale(t *testing.T) {
	ctx := context.Background()

	t.Run("Should restore the sold quantity", func(t *testing.T) {
		product := testProduct(10, 0, 50)
		productRepo := newFakeProductRepo(product)
		saleRepo := newFakeSaleRepo()
		svc := service.NewSaleService(fakeDB{}, saleRepo, productRepo, newFakeOutboxRepo())

		sale, err := svc.CreateSale(ctx, service.CreateSaleParams{
			ProductID:    product.ID,
			QuantitySold: 4,
			Staff:        testStaff(),
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteSale(ctx, sale.ID))

		got, err := productRepo.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Quantity)

		sales, err := saleRepo.ListAllSales(ctx)
		require.NoError(t, err)
		assert.Empty(t, sales)
	})

	t.Run("Should delete the sale even when the product is gone", func(t *testing.T) {
		product := testProduct(10, 0, 50)
		productRepo := newFakeProductRepo(product)
		saleRepo := newFakeSaleRepo()
		svc := service.NewSaleService(fakeDB{}, saleRepo, productRepo, newFakeOutboxRepo())

		sale, err := svc.CreateSale(ctx, service.CreateSaleParams{
			ProductID:    product.ID,
			QuantitySold: 4,
			Staff:        testStaff(),
		})
		require.NoError(t, err)
		require.NoError(t, productRepo.DeleteProduct(ctx, product.ID))

		require.NoError(t, svc.DeleteSale(ctx, sale.ID))
	})

	t.Run("Should return not found for an unknown sale", func(t *testing.T) {
		svc := service.NewSaleService(fakeDB{}, newFakeSaleRepo(), newFakeProductRepo(), newFakeOutboxRepo())

		id, _ := uuid.NewV7()
		require.ErrorIs(t, svc.DeleteSale(ctx, id), apperr.SaleNotFoundErr)
	})
}

func TestListSales(t *testing.T) {
	ctx := context.Background()

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	onDay := model.Sale{ID: uuid.New(), ProductName: "Oil Filter", Date: day.Add(10 * time.Hour)}
	nextDay := model.Sale{ID: uuid.New(), ProductName: "Air Filter", Date: day.AddDate(0, 0, 1).Add(time.Hour)}
	saleRepo := newFakeSaleRepo(onDay, nextDay)
	svc := service.NewSaleService(fakeDB{}, saleRepo, newFakeProductRepo(), newFakeOutboxRepo())

	t.Run("Should list everything without a date", func(t *testing.T) {
		sales, err := svc.ListSales(ctx, service.ListSalesParams{})
		require.NoError(t, err)
		assert.Len(t, sales, 2)
	})

	t.Run("Should restrict to the given day", func(t *testing.T) {
		sales, err := svc.ListSales(ctx, service.ListSalesParams{Date: &day})
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, onDay.ID, sales[0].ID)
	})
}
