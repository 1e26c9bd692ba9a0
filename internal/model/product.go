package model

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID           uuid.UUID `json:"id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	Type         *string   `json:"type,omitempty"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
	MinimumStock int       `json:"minimum_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsLowStock reports whether the product sits at or under its low-stock
// threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinimumStock
}

// PublicProduct is the catalog view exposed without authentication.
// Price and audit fields are deliberately absent.
type PublicProduct struct {
	ID           uuid.UUID `json:"id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	Type         *string   `json:"type,omitempty"`
	Quantity     int       `json:"quantity"`
	MinimumStock int       `json:"minimum_stock"`
}
