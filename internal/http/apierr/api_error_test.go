package apierr_test

import (
	"errors"
	"net/http"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/http/apierr"
	"github.com/dukasmart/partspos/pkg/zerror"
)

func TestNew(t *testing.T) {
	t.Run("Should map a domain error to its status and code", func(t *testing.T) {
		res := apierr.New(apperr.ProductNotFoundErr)

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "PRODUCT_NOT_FOUND", res.Code)
		assert.Equal(t, "product not found", res.Message)
	})

	t.Run("Should map a wrapped domain error the same way", func(t *testing.T) {
		wrapped := apperr.InsufficientStockErr.WrapParent(errors.New("quantity 5 > stock 3"))
		res := apierr.New(wrapped)

		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
		assert.Equal(t, "INSUFFICIENT_STOCK", res.Code)
	})

	t.Run("Should carry field details for validation errors", func(t *testing.T) {
		type payload struct {
			Email string `validate:"required,email"`
		}
		err := govalidator.New().Struct(payload{Email: "not-an-email"})
		require.Error(t, err)

		res := apierr.New(err)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "validationError", res.Code)
		require.NotNil(t, res.Details)
		require.Len(t, *res.Details, 1)
		assert.Equal(t, "Email", (*res.Details)[0].Field)
	})

	t.Run("Should hide unknown errors behind a 500", func(t *testing.T) {
		res := apierr.New(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, "internalServerError", res.Code)
		assert.Equal(t, "an unknown error occurred", res.Message)
	})
}

func TestZErrorStatusToHTTPStatus(t *testing.T) {
	cases := map[zerror.Status]int{
		zerror.StatusBadRequest:          http.StatusBadRequest,
		zerror.StatusUnauthorized:        http.StatusUnauthorized,
		zerror.StatusForbidden:           http.StatusForbidden,
		zerror.StatusNotFound:            http.StatusNotFound,
		zerror.StatusConflict:            http.StatusConflict,
		zerror.StatusUnprocessableEntity: http.StatusUnprocessableEntity,
		zerror.StatusValidationFailed:    http.StatusBadRequest,
		zerror.StatusInternalServerError: http.StatusInternalServerError,
		zerror.StatusUnknown:             http.StatusInternalServerError,
	}

	for status, want := range cases {
		assert.Equal(t, want, apierr.ZErrorStatusToHTTPStatus(status), status.String())
	}
}
