package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/repository"
)

type ReportService interface {
	// DailyReport summarizes the sales of one calendar day.
	DailyReport(ctx context.Context, day time.Time) (model.DailyReport, error)
	// MonthlyReport summarizes a calendar month with a per-category
	// breakdown. Owner only (enforced at the HTTP layer).
	MonthlyReport(ctx context.Context, month time.Month, year int) (model.MonthlyReport, error)
	// YearlyReport summarizes a calendar year with a fixed 12-entry
	// monthly breakdown. Owner only (enforced at the HTTP layer).
	YearlyReport(ctx context.Context, year int) (model.YearlyReport, error)
	// LowStockReport lists products at or under their minimum stock,
	// most depleted first.
	LowStockReport(ctx context.Context) ([]model.Product, error)
}

type reportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewReportService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) ReportService {
	return &reportService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

func (s *reportService) DailyReport(ctx context.Context, day time.Time) (model.DailyReport, error) {
	from := startOfDay(day)
	nextDay := from.AddDate(0, 0, 1)

	// Legacy exact-day window, inclusive of 23:59:59.999. Timestamps carry
	// microsecond precision, so the half-open bound sits one tick past it.
	to := nextDay.Add(-time.Millisecond).Add(time.Microsecond)
	sales, err := s.saleRepo.ListSalesBetween(ctx, from, to)
	if err != nil {
		return model.DailyReport{}, fmt.Errorf("sale repository list sales between: %w", err)
	}

	isFallback := false
	if len(sales) == 0 {
		// Legacy fallback: widen to the full day boundary and flag the
		// result. Kept for compatibility with the old reporting page.
		sales, err = s.saleRepo.ListSalesBetween(ctx, from, nextDay)
		if err != nil {
			return model.DailyReport{}, fmt.Errorf("sale repository list sales between: %w", err)
		}
		isFallback = len(sales) > 0
	}

	var totalAmount float64
	for _, sale := range sales {
		totalAmount += sale.SalePrice
	}

	return model.DailyReport{
		Date:             from.Format("2006-01-02"),
		TotalSalesAmount: totalAmount,
		TotalSales:       len(sales),
		Sales:            sales,
		IsFallbackData:   isFallback,
	}, nil
}

func (s *reportService) MonthlyReport(ctx context.Context, month time.Month, year int) (model.MonthlyReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	sales, err := s.saleRepo.ListSalesBetween(ctx, from, to)
	if err != nil {
		return model.MonthlyReport{}, fmt.Errorf("sale repository list sales between: %w", err)
	}

	var (
		totalAmount   float64
		totalQuantity int
	)
	byCategory := make(map[string]*model.CategorySales)
	for _, sale := range sales {
		totalAmount += sale.SalePrice
		totalQuantity += sale.QuantitySold

		entry, ok := byCategory[sale.Category]
		if !ok {
			entry = &model.CategorySales{Category: sale.Category}
			byCategory[sale.Category] = entry
		}
		entry.TotalSales += sale.SalePrice
		entry.TotalQuantity += sale.QuantitySold
	}

	breakdown := make([]model.CategorySales, 0, len(byCategory))
	for _, entry := range byCategory {
		breakdown = append(breakdown, *entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Category < breakdown[j].Category
	})

	return model.MonthlyReport{
		Month:             month.String(),
		Year:              year,
		TotalSalesAmount:  totalAmount,
		TotalProductsSold: totalQuantity,
		CategoryBreakdown: breakdown,
	}, nil
}

func (s *reportService) YearlyReport(ctx context.Context, year int) (model.YearlyReport, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)

	sales, err := s.saleRepo.ListSalesBetween(ctx, from, to)
	if err != nil {
		return model.YearlyReport{}, fmt.Errorf("sale repository list sales between: %w", err)
	}

	var (
		totalAmount   float64
		totalQuantity int
	)

	// Always 12 entries, months without sales stay zero.
	breakdown := make([]model.MonthSales, 12)
	for i := range breakdown {
		breakdown[i].Month = time.Month(i + 1).String()
	}

	for _, sale := range sales {
		totalAmount += sale.SalePrice
		totalQuantity += sale.QuantitySold

		m := int(sale.Date.Month()) - 1
		breakdown[m].TotalSales += sale.SalePrice
		breakdown[m].TotalQuantity += sale.QuantitySold
	}

	return model.YearlyReport{
		Year:              year,
		TotalSalesAmount:  totalAmount,
		TotalProductsSold: totalQuantity,
		MonthlyBreakdown:  breakdown,
	}, nil
}

func (s *reportService) LowStockReport(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListLowStockProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list low stock products: %w", err)
	}

	return products, nil
}
