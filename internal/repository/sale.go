package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/storage/db"
)

type UpdateSaleParams struct {
	ID           uuid.UUID
	QuantitySold int
	SalePrice    float64
}

type SaleRepository interface {
	WithDB(db db.DB) SaleRepository
	CreateSale(ctx context.Context, sale model.Sale) error
	GetSale(ctx context.Context, id uuid.UUID) (model.Sale, error)
	// ListSalesBetween returns sales with date in [from, to), newest first.
	// Category is joined from products, falling back to the first word of
	// the name snapshot when the product has been deleted.
	ListSalesBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error)
	ListAllSales(ctx context.Context) ([]model.Sale, error)
	UpdateSale(ctx context.Context, params UpdateSaleParams) error
	DeleteSale(ctx context.Context, id uuid.UUID) error
}

type saleRepository struct {
	db db.DB
}

func NewSaleRepository(db db.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r saleRepository) WithDB(db db.DB) SaleRepository {
	return &saleRepository{db: db}
}

const saleSelect = `
	SELECT s.id, s.product_id, s.product_name,
		COALESCE(p.category, split_part(s.product_name, ' ', 1)) AS category,
		s.quantity_sold, s.sale_price, s.date, s.staff_id, s.staff_name,
		s.created_at, s.updated_at
	FROM sales s
	LEFT JOIN products p ON p.id = s.product_id
`

func (r saleRepository) CreateSale(ctx context.Context, sale model.Sale) error {
	price, err := numericFromFloat(sale.SalePrice)
	if err != nil {
		return fmt.Errorf("sale price: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO sales (id, product_id, product_name, quantity_sold, sale_price, date, staff_id, staff_name, created_at, updated_at)
		VALUES (@id, @product_id, @product_name, @quantity_sold, @sale_price, @date, @staff_id, @staff_name, @created_at, @updated_at)
	`, pgx.NamedArgs{
		"id":            sale.ID,
		"product_id":    sale.ProductID,
		"product_name":  sale.ProductName,
		"quantity_sold": sale.QuantitySold,
		"sale_price":    price,
		"date":          sale.Date,
		"staff_id":      sale.StaffID,
		"staff_name":    sale.StaffName,
		"created_at":    sale.CreatedAt,
		"updated_at":    sale.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("create sale: %w", err)
	}

	return nil
}

func (r saleRepository) GetSale(ctx context.Context, id uuid.UUID) (model.Sale, error) {
	row := r.db.QueryRow(ctx, saleSelect+`
		WHERE s.id = @id
	`, pgx.NamedArgs{"id": id})

	return scanSale(row)
}

func (r saleRepository) ListSalesBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	rows, err := r.db.Query(ctx, saleSelect+`
		WHERE s.date >= @from AND s.date < @to
		ORDER BY s.date DESC
	`, pgx.NamedArgs{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return nil, fmt.Errorf("list sales between: %w", err)
	}
	defer rows.Close()

	return scanSales(rows)
}

func (r saleRepository) ListAllSales(ctx context.Context) ([]model.Sale, error) {
	rows, err := r.db.Query(ctx, saleSelect+`
		ORDER BY s.date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all sales: %w", err)
	}
	defer rows.Close()

	return scanSales(rows)
}

func (r saleRepository) UpdateSale(ctx context.Context, params UpdateSaleParams) error {
	price, err := numericFromFloat(params.SalePrice)
	if err != nil {
		return fmt.Errorf("sale price: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE sales
		SET quantity_sold = @quantity_sold,
			sale_price    = @sale_price,
			updated_at    = NOW()
		WHERE id = @id
	`, pgx.NamedArgs{
		"id":            params.ID,
		"quantity_sold": params.QuantitySold,
		"sale_price":    price,
	})
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r saleRepository) DeleteSale(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM sales WHERE id = @id
	`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanSale(row pgx.Row) (model.Sale, error) {
	var (
		s     model.Sale
		price pgtype.Numeric
	)
	if err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Category,
		&s.QuantitySold, &price, &s.Date, &s.StaffID, &s.StaffName,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Sale{}, ErrNotFound
		}
		return model.Sale{}, fmt.Errorf("scan sale: %w", err)
	}

	f, err := floatFromNumeric(price)
	if err != nil {
		return model.Sale{}, err
	}
	s.SalePrice = f

	return s, nil
}

func scanSales(rows pgx.Rows) ([]model.Sale, error) {
	sales := make([]model.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	return sales, nil
}
