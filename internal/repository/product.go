package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/storage/db"
)

type ListProductsParams struct {
	// Search matches product name, category and type, case-insensitively.
	Search   string
	Category string
	Type     string

	// InStockOnly restricts results to quantity > 0 (public catalog).
	InStockOnly bool
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	// GetProductForUpdate locks the product row for the rest of the
	// transaction. Only meaningful inside WithTx.
	GetProductForUpdate(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	ListLowStockProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) error
	UpdateProductQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, product_name, category, type, quantity, price_per_unit, minimum_stock, created_at, updated_at`

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.PricePerUnit)
	if err != nil {
		return fmt.Errorf("price per unit: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (@id, @product_name, @category, @type, @quantity, @price_per_unit, @minimum_stock, @created_at, @updated_at)
	`, pgx.NamedArgs{
		"id":             product.ID,
		"product_name":   product.ProductName,
		"category":       product.Category,
		"type":           product.Type,
		"quantity":       product.Quantity,
		"price_per_unit": price,
		"minimum_stock":  product.MinimumStock,
		"created_at":     product.CreatedAt,
		"updated_at":     product.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r productRepository) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = @id
	`, pgx.NamedArgs{"id": id})

	return scanProduct(row)
}

func (r productRepository) GetProductForUpdate(ctx context.Context, id uuid.UUID) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = @id
		FOR UPDATE
	`, pgx.NamedArgs{"id": id})

	return scanProduct(row)
}

func (r productRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE (@search = '' OR product_name ILIKE '%' || @search || '%'
			OR category ILIKE '%' || @search || '%'
			OR type ILIKE '%' || @search || '%')
		AND (@category = '' OR category = @category)
		AND (@type = '' OR type = @type)
	`
	if params.InStockOnly {
		query += ` AND quantity > 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{
		"search":   params.Search,
		"category": params.Category,
		"type":     params.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r productRepository) ListLowStockProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE quantity <= minimum_stock
		ORDER BY quantity ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.PricePerUnit)
	if err != nil {
		return fmt.Errorf("price per unit: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET product_name   = @product_name,
			category       = @category,
			type           = @type,
			quantity       = @quantity,
			price_per_unit = @price_per_unit,
			minimum_stock  = @minimum_stock,
			updated_at     = @updated_at
		WHERE id = @id
	`, pgx.NamedArgs{
		"id":             product.ID,
		"product_name":   product.ProductName,
		"category":       product.Category,
		"type":           product.Type,
		"quantity":       product.Quantity,
		"price_per_unit": price,
		"minimum_stock":  product.MinimumStock,
		"updated_at":     product.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r productRepository) UpdateProductQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET quantity = @quantity, updated_at = NOW()
		WHERE id = @id
	`, pgx.NamedArgs{
		"id":       id,
		"quantity": quantity,
	})
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM products WHERE id = @id
	`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p     model.Product
		price pgtype.Numeric
	)
	if err := row.Scan(&p.ID, &p.ProductName, &p.Category, &p.Type, &p.Quantity,
		&price, &p.MinimumStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, fmt.Errorf("scan product: %w", err)
	}

	f, err := floatFromNumeric(price)
	if err != nil {
		return model.Product{}, err
	}
	p.PricePerUnit = f

	return p, nil
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}
