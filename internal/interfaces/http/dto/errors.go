package dto

import "net/http"

// Transport-level error codes. Domain errors keep their own codes and are
// mapped to a status below.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes not
// listed fall back to 422: they are business rule violations by construction.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	"BAD_CREDENTIALS":   http.StatusUnauthorized,

	ErrCodeForbidden: http.StatusForbidden,
	"NOT_YOUR_TURN":  http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"ALREADY_DECIDED":      http.StatusConflict,
	"ALREADY_GRANTED":      http.StatusConflict,
	"WORKFLOW_EXISTS":      http.StatusConflict,
	"ID_COLLISION":         http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_NUMBER":       http.StatusBadRequest,
	"INVALID_KIND":         http.StatusBadRequest,
	"INVALID_SEQUENCE":     http.StatusBadRequest,
	"INVALID_PERIOD":       http.StatusBadRequest,
	"INVALID_CURRENCY":     http.StatusBadRequest,
	"INVALID_RATE":         http.StatusBadRequest,
	"INVALID_CUSTOMER":     http.StatusBadRequest,
	"INVALID_VALIDITY":     http.StatusBadRequest,
	"INVALID_PRODUCT":      http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_AMOUNT":       http.StatusBadRequest,
	"INVALID_CATEGORY":     http.StatusBadRequest,
	"INVALID_TITLE":        http.StatusBadRequest,
	"INVALID_REASON":       http.StatusBadRequest,
	"INVALID_WEEK":         http.StatusBadRequest,
	"INVALID_TIER":         http.StatusBadRequest,
	"INVALID_USERNAME":     http.StatusBadRequest,
	"INVALID_PASSWORD":     http.StatusBadRequest,
	"INVALID_DISPLAY_NAME": http.StatusBadRequest,
	"INVALID_EMAIL":        http.StatusBadRequest,
	"INVALID_CODE":         http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_STAGE":        http.StatusBadRequest,
	"INVALID_STATUS":       http.StatusBadRequest,
	"INVALID_LEVEL":        http.StatusBadRequest,
	"INVALID_APPROVERS":    http.StatusBadRequest,
	"INVALID_REQUESTER":    http.StatusBadRequest,
	"INVALID_AUTHOR":       http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
