package apperr

import "github.com/dukasmart/partspos/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	UnauthorizedErr       = zerror.NewUnauthorized("UNAUTHORIZED", "authentication required")
	ForbiddenErr          = zerror.NewForbidden("FORBIDDEN", "insufficient role")
	InvalidCredentialsErr = zerror.NewUnauthorized("INVALID_CREDENTIALS", "invalid email or password")

	ProductNotFoundErr = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	SaleNotFoundErr    = zerror.NewNotFound("SALE_NOT_FOUND", "sale not found")
	UserNotFoundErr    = zerror.NewNotFound("USER_NOT_FOUND", "user not found")

	InsufficientStockErr    = zerror.NewUnprocessableEntity("INSUFFICIENT_STOCK", "sale exceeds available stock")
	InvalidRestockAmountErr = zerror.NewBadRequest("INVALID_RESTOCK_AMOUNT", "restock amount must be positive")
	EmailTakenErr           = zerror.NewConflict("EMAIL_TAKEN", "a user with this email already exists")
	BootstrapClosedErr      = zerror.NewForbidden("BOOTSTRAP_CLOSED", "only the owner can create staff accounts")
)
