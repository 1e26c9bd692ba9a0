package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// ErrNotFound is returned when a queried row does not exist. Services
// translate it into the matching domain error.
var ErrNotFound = errors.New("not found")

func numericFromFloat(f float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(fmt.Sprintf("%f", f)); err != nil {
		return n, fmt.Errorf("scan numeric: %w", err)
	}
	return n, nil
}

func floatFromNumeric(n pgtype.Numeric) (float64, error) {
	v, err := n.Float64Value()
	if err != nil {
		return 0, fmt.Errorf("convert numeric to float64: %w", err)
	}
	return v.Float64, nil
}
