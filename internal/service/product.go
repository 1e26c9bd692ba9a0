package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/repository"
	"github.com/dukasmart/partspos/internal/storage/db"
)

type CreateProductParams struct {
	ProductName  string
	Category     string
	Type         *string
	Quantity     int
	PricePerUnit float64
	MinimumStock int
}

type UpdateProductParams struct {
	ID           uuid.UUID
	ProductName  string
	Category     string
	Type         *string
	Quantity     int
	PricePerUnit float64
	MinimumStock int
}

type ListProductsParams struct {
	Search   string
	Category string
	Type     string
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	// ListPublicProducts is the unauthenticated catalog view: in-stock
	// products only, without price or audit fields.
	ListPublicProducts(ctx context.Context, params ListProductsParams) ([]model.PublicProduct, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	// RestockProduct adds a positive amount to the product's quantity.
	RestockProduct(ctx context.Context, id uuid.UUID, amount int) (model.Product, error)
}

type productService struct {
	db            db.DB
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		db:            db,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	product := model.Product{
		ID:           id,
		ProductName:  params.ProductName,
		Category:     params.Category,
		Type:         params.Type,
		Quantity:     params.Quantity,
		PricePerUnit: params.PricePerUnit,
		MinimumStock: params.MinimumStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.productRepo.
			WithDB(db).
			CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		if err := s.createStockLowMsgIfNeeded(ctx, db, product); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, repository.ListProductsParams{
		Search:   params.Search,
		Category: params.Category,
		Type:     params.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) ListPublicProducts(ctx context.Context, params ListProductsParams) ([]model.PublicProduct, error) {
	products, err := s.productRepo.ListProducts(ctx, repository.ListProductsParams{
		Search:      params.Search,
		Category:    params.Category,
		Type:        params.Type,
		InStockOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	public := make([]model.PublicProduct, 0, len(products))
	for _, p := range products {
		public = append(public, model.PublicProduct{
			ID:           p.ID,
			ProductName:  p.ProductName,
			Category:     p.Category,
			Type:         p.Type,
			Quantity:     p.Quantity,
			MinimumStock: p.MinimumStock,
		})
	}

	return public, nil
}

// UpdateProduct sets every mutable field directly, quantity included. This
// bypasses the sale ledger on purpose: the shop owner is the final
// authority on what is actually on the shelf.
func (s *productService) UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error) {
	var product model.Product

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		current, err := s.productRepo.WithDB(db).GetProductForUpdate(ctx, params.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.ProductNotFoundErr
			}
			return fmt.Errorf("product repository get product: %w", err)
		}

		product = current
		product.ProductName = params.ProductName
		product.Category = params.Category
		product.Type = params.Type
		product.Quantity = params.Quantity
		product.PricePerUnit = params.PricePerUnit
		product.MinimumStock = params.MinimumStock
		product.UpdatedAt = time.Now()

		if err := s.productRepo.WithDB(db).UpdateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		if err := s.createStockLowMsgIfNeeded(ctx, db, product); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return model.Product{}, err
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.ProductNotFoundErr
		}
		return fmt.Errorf("product repository delete product: %w", err)
	}

	return nil
}

func (s *productService) RestockProduct(ctx context.Context, id uuid.UUID, amount int) (model.Product, error) {
	if amount <= 0 {
		return model.Product{}, apperr.InvalidRestockAmountErr
	}

	var product model.Product

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		current, err := s.productRepo.WithDB(db).GetProductForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.ProductNotFoundErr
			}
			return fmt.Errorf("product repository get product: %w", err)
		}

		product = current
		product.Quantity += amount
		product.UpdatedAt = time.Now()

		if err := s.productRepo.WithDB(db).UpdateProductQuantity(ctx, id, product.Quantity); err != nil {
			return fmt.Errorf("product repository update quantity: %w", err)
		}

		// A restock can still leave the product under threshold.
		if err := s.createStockLowMsgIfNeeded(ctx, db, product); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return model.Product{}, err
	}

	return product, nil
}

func (s *productService) createStockLowMsgIfNeeded(ctx context.Context, db db.DB, product model.Product) error {
	if !product.IsLowStock() {
		return nil
	}

	msg, err := stockLowOutboxMsg(ctx, product)
	if err != nil {
		return err
	}

	if err := s.outboxMsgRepo.WithDB(db).CreateOutboxMsg(ctx, msg); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}
