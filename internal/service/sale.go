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

type CreateSaleParams struct {
	ProductID    uuid.UUID
	QuantitySold int

	// SellingPricePerUnit overrides the product's list price when set.
	SellingPricePerUnit *float64

	// Staff is the authenticated caller recording the sale; id and name
	// are snapshotted onto the sale.
	Staff model.Principal
}

type UpdateSaleParams struct {
	ID           uuid.UUID
	QuantitySold int
	SalePrice    float64
}

type ListSalesParams struct {
	// Date restricts results to the calendar day it falls on.
	Date *time.Time
}

type SaleService interface {
	CreateSale(ctx context.Context, params CreateSaleParams) (model.Sale, error)
	ListSales(ctx context.Context, params ListSalesParams) ([]model.Sale, error)
	UpdateSale(ctx context.Context, params UpdateSaleParams) (model.Sale, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
}

type saleService struct {
	db            db.DB
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewSaleService(
	db db.DB,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) SaleService {
	return &saleService{
		db:            db,
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

// CreateSale records a sale and decrements the product's stock. Both writes
// and the emitted events commit in one transaction; the product row is
// locked first so concurrent sales cannot race past the stock check.
func (s *saleService) CreateSale(ctx context.Context, params CreateSaleParams) (model.Sale, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Sale{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	var sale model.Sale

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		product, err := s.productRepo.WithDB(db).GetProductForUpdate(ctx, params.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.ProductNotFoundErr
			}
			return fmt.Errorf("product repository get product: %w", err)
		}

		if product.Quantity < params.QuantitySold {
			return apperr.InsufficientStockErr
		}

		pricePerUnit := product.PricePerUnit
		if params.SellingPricePerUnit != nil {
			pricePerUnit = *params.SellingPricePerUnit
		}

		now := time.Now()
		sale = model.Sale{
			ID:           id,
			ProductID:    product.ID,
			ProductName:  product.ProductName,
			Category:     product.Category,
			QuantitySold: params.QuantitySold,
			SalePrice:    pricePerUnit * float64(params.QuantitySold),
			Date:         now,
			StaffID:      params.Staff.ID,
			StaffName:    params.Staff.Name,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.saleRepo.WithDB(db).CreateSale(ctx, sale); err != nil {
			return fmt.Errorf("sale repository create sale: %w", err)
		}

		product.Quantity -= params.QuantitySold
		if err := s.productRepo.WithDB(db).UpdateProductQuantity(ctx, product.ID, product.Quantity); err != nil {
			return fmt.Errorf("product repository update quantity: %w", err)
		}

		recordedMsg, err := saleRecordedOutboxMsg(ctx, sale)
		if err != nil {
			return err
		}
		if err := s.outboxMsgRepo.WithDB(db).CreateOutboxMsg(ctx, recordedMsg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		if product.IsLowStock() {
			lowMsg, err := stockLowOutboxMsg(ctx, product)
			if err != nil {
				return err
			}
			if err := s.outboxMsgRepo.WithDB(db).CreateOutboxMsg(ctx, lowMsg); err != nil {
				return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
			}
		}

		return nil
	}); err != nil {
		return model.Sale{}, err
	}

	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, params ListSalesParams) ([]model.Sale, error) {
	if params.Date == nil {
		sales, err := s.saleRepo.ListAllSales(ctx)
		if err != nil {
			return nil, fmt.Errorf("sale repository list all sales: %w", err)
		}
		return sales, nil
	}

	from := startOfDay(*params.Date)
	sales, err := s.saleRepo.ListSalesBetween(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("sale repository list sales between: %w", err)
	}

	return sales, nil
}

// UpdateSale rewrites quantity and price and compensates the product's
// stock by the quantity delta. The adjusted quantity is not re-validated,
// an edit can legitimately drive stock negative.
func (s *saleService) UpdateSale(ctx context.Context, params UpdateSaleParams) (model.Sale, error) {
	var sale model.Sale

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		current, err := s.saleRepo.WithDB(db).GetSale(ctx, params.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.SaleNotFoundErr
			}
			return fmt.Errorf("sale repository get sale: %w", err)
		}

		if err := s.saleRepo.WithDB(db).UpdateSale(ctx, repository.UpdateSaleParams{
			ID:           params.ID,
			QuantitySold: params.QuantitySold,
			SalePrice:    params.SalePrice,
		}); err != nil {
			return fmt.Errorf("sale repository update sale: %w", err)
		}

		sale = current
		sale.QuantitySold = params.QuantitySold
		sale.SalePrice = params.SalePrice
		sale.UpdatedAt = time.Now()

		product, err := s.productRepo.WithDB(db).GetProductForUpdate(ctx, current.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Product deleted since the sale was recorded, nothing
				// to compensate.
				return nil
			}
			return fmt.Errorf("product repository get product: %w", err)
		}

		delta := current.QuantitySold - params.QuantitySold
		if err := s.productRepo.WithDB(db).UpdateProductQuantity(ctx, product.ID, product.Quantity+delta); err != nil {
			return fmt.Errorf("product repository update quantity: %w", err)
		}

		return nil
	}); err != nil {
		return model.Sale{}, err
	}

	return sale, nil
}

// DeleteSale restores the sold quantity to the product, then removes the
// sale. A missing product makes the restore a no-op.
func (s *saleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	return s.db.WithTx(ctx, func(db db.DB) error {
		sale, err := s.saleRepo.WithDB(db).GetSale(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.SaleNotFoundErr
			}
			return fmt.Errorf("sale repository get sale: %w", err)
		}

		product, err := s.productRepo.WithDB(db).GetProductForUpdate(ctx, sale.ProductID)
		if err == nil {
			if err := s.productRepo.WithDB(db).UpdateProductQuantity(ctx, product.ID, product.Quantity+sale.QuantitySold); err != nil {
				return fmt.Errorf("product repository update quantity: %w", err)
			}
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("product repository get product: %w", err)
		}

		if err := s.saleRepo.WithDB(db).DeleteSale(ctx, id); err != nil {
			return fmt.Errorf("sale repository delete sale: %w", err)
		}

		return nil
	})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
