package model

import (
	"time"

	"github.com/google/uuid"
)

type Sale struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`

	// ProductName is a snapshot taken at sale time. The product may be
	// renamed or deleted afterwards without touching recorded sales.
	ProductName string `json:"product_name"`

	// Category is joined from the product on reads. For sales whose product
	// no longer exists it falls back to the first word of the name snapshot.
	Category string `json:"category,omitempty"`

	QuantitySold int `json:"quantity_sold"`

	// SalePrice is the line total, not the unit price.
	SalePrice float64 `json:"sale_price"`

	Date      time.Time `json:"date"`
	StaffID   uuid.UUID `json:"staff_id"`
	StaffName string    `json:"staff_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
