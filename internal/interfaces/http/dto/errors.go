package dto

import "net/http"

// Transport level error codes. Domain errors keep the code of their
// shared.DomainError.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeRouteNotFound   = "ROUTE_NOT_FOUND"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
)

// Domain error codes, mirrored from the shared domain errors
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeMerchandiseNotFound = "MERCHANDISE_NOT_FOUND"
	ErrCodeInvoiceNotFound     = "INVOICE_NOT_FOUND"
	ErrCodeClientNotFound      = "CLIENT_NOT_FOUND"
	ErrCodeMissingClientRegion = "MISSING_CLIENT_REGION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRouteNotFound:   http.StatusNotFound,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeMerchandiseNotFound: http.StatusNotFound,
	ErrCodeInvoiceNotFound:     http.StatusNotFound,
	ErrCodeClientNotFound:      http.StatusNotFound,

	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeMissingClientRegion: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are server errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
