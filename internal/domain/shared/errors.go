package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Is reports whether target carries the same code, so that errors built with
// WithMessage still match their sentinel.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of the error with a more specific message.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrMerchandiseNotFound = NewDomainError("MERCHANDISE_NOT_FOUND", "Merchandise not found")
	ErrInvoiceNotFound     = NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	ErrClientNotFound      = NewDomainError("CLIENT_NOT_FOUND", "Client not found")
	ErrMissingClientRegion = NewDomainError("MISSING_CLIENT_REGION", "Client has no country to search the region by")
	ErrNotComputable       = NewDomainError("NOT_COMPUTABLE", "Value is not computable")
)
