package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Checkout error taxonomy. Handlers map these to stable error kinds in
// the JSON body so clients never have to parse messages.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrNotFound             = errors.New("not found")
	ErrValidationFailed     = errors.New("validation failed")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAddress       = errors.New("invalid shipping address")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
	ErrOrderCreationFailed  = errors.New("order creation failed")
)

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidationFailed):
		return "validation_failed"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrInvalidPaymentMethod):
		return "invalid_payment_method"
	case errors.Is(err, ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrDuplicateOrderNumber):
		return "duplicate_order_number"
	case errors.Is(err, ErrOrderCreationFailed):
		return "order_creation_failed"
	default:
		return "internal_error"
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidationFailed),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInvalidPaymentMethod),
		errors.Is(err, ErrInvalidAddress),
		errors.Is(err, ErrInvalidTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusCode(err), gin.H{
		"error":   errorKind(err),
		"message": err.Error(),
	})
}
