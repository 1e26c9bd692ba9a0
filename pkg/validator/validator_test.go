package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukasmart/partspos/pkg/validator"
)

func TestDateValidation(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	type query struct {
		Date string `validate:"omitempty,date"`
	}

	t.Run("Should accept yyyy-MM-dd", func(t *testing.T) {
		assert.NoError(t, v.Validate(query{Date: "2026-03-14"}))
	})

	t.Run("Should accept empty", func(t *testing.T) {
		assert.NoError(t, v.Validate(query{}))
	})

	t.Run("Should reject other formats", func(t *testing.T) {
		assert.Error(t, v.Validate(query{Date: "14/03/2026"}))
		assert.Error(t, v.Validate(query{Date: "2026-13-40"}))
	})
}
