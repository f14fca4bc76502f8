package model

import (
	"fmt"
	"net/http"
)

// Standard error codes for API responses
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeCartItemNotFound  = "CART_ITEM_NOT_FOUND"
	ErrCodeCartEmpty         = "CART_EMPTY"
	ErrCodeNoCartSession     = "NO_CART_SESSION"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeInvalidStatus     = "INVALID_STATUS"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeAdminExists       = "ADMIN_EXISTS"
	ErrCodeInvalidFile       = "INVALID_FILE"
	ErrCodeFileTooLarge      = "FILE_TOO_LARGE"
	ErrCodeImageNotFound     = "IMAGE_NOT_FOUND"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business failure that maps to a specific HTTP status.
type DomainError struct {
	Code    string
	Status  int
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code string, status int, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Status:  status,
		Message: message,
	}
}

// NewValidationError creates a 400 validation error with a custom message.
func NewValidationError(format string, args ...interface{}) *DomainError {
	return NewDomainError(ErrCodeValidation, http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// NewInsufficientStockError reports which product failed the stock check.
func NewInsufficientStockError(productName string) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock, http.StatusBadRequest,
		fmt.Sprintf("Insufficient stock for %s", productName))
}

// NewProductUnavailableError reports a cart product that is missing or
// inactive at checkout time.
func NewProductUnavailableError(productID int64) *DomainError {
	return NewDomainError(ErrCodeProductNotFound, http.StatusBadRequest,
		fmt.Sprintf("Product %d is no longer available", productID))
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, http.StatusNotFound, "Product not found")
	ErrInsufficientStock  = NewDomainError(ErrCodeInsufficientStock, http.StatusBadRequest, "Insufficient stock")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, http.StatusBadRequest, "Quantity must be greater than 0")
	ErrCartItemNotFound   = NewDomainError(ErrCodeCartItemNotFound, http.StatusNotFound, "Cart item not found")
	ErrCartEmpty          = NewDomainError(ErrCodeCartEmpty, http.StatusBadRequest, "Cart is empty")
	ErrNoCartSession      = NewDomainError(ErrCodeNoCartSession, http.StatusBadRequest, "No cart session found")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, http.StatusNotFound, "Order not found")
	ErrInvalidStatus      = NewDomainError(ErrCodeInvalidStatus, http.StatusBadRequest, "Invalid status")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorised, http.StatusUnauthorized, "Invalid credentials")
	ErrAuthRequired       = NewDomainError(ErrCodeUnauthorised, http.StatusUnauthorized, "Authentication required")
	ErrAdminInactive      = NewDomainError(ErrCodeUnauthorised, http.StatusUnauthorized, "Invalid or inactive admin")
	ErrAdminExists        = NewDomainError(ErrCodeAdminExists, http.StatusBadRequest, "Admin already exists")
	ErrInvalidFileType    = NewDomainError(ErrCodeInvalidFile, http.StatusBadRequest, "Invalid file type. Allowed: PNG, JPG, JPEG, GIF, WEBP")
	ErrFileTooLarge       = NewDomainError(ErrCodeFileTooLarge, http.StatusBadRequest, "File too large. Maximum size: 5MB")
	ErrImageNotFound      = NewDomainError(ErrCodeImageNotFound, http.StatusNotFound, "Image not found")
)
