package dto

import (
	"net/http"

	"github.com/labakery/backend/internal/domain/shared"
)

// Error codes raised by the interface layer itself
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeTooLarge    = "REQUEST_TOO_LARGE"
)

// Domain error codes with a status other than 400
const (
	ErrCodeAccountLocked          = "ACCOUNT_LOCKED"
	ErrCodeFileTooLarge           = "FILE_TOO_LARGE"
	ErrCodeConcurrentModification = "CONCURRENT_MODIFICATION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Codes missing
// from the map are input errors.
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeAlreadyExists: http.StatusConflict,
	shared.CodeUnauthorized:  http.StatusUnauthorized,
	shared.CodeForbidden:     http.StatusForbidden,

	ErrCodeConcurrentModification: http.StatusConflict,
	ErrCodeAccountLocked:          http.StatusTooManyRequests,
	ErrCodeFileTooLarge:           http.StatusRequestEntityTooLarge,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeTooLarge:    http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 400 Bad Request if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
