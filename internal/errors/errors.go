// Package errors provides custom error types for the StockSentry API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Store errors. A store failure is reported distinctly from a lookup miss so
// callers can tell "service unavailable" apart from "no such record".
var (
	ErrStoreUnavailable = &AppError{Code: "STORE_UNAVAILABLE", Message: "Storage backend unavailable", StatusCode: http.StatusServiceUnavailable}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
)

// Watchlist errors.
var (
	ErrWatchlistNotFound = &AppError{Code: "WATCHLIST_NOT_FOUND", Message: "Watchlist not found", StatusCode: http.StatusNotFound}
	ErrSymbolNotTracked  = &AppError{Code: "SYMBOL_NOT_TRACKED", Message: "Symbol is not in this watchlist", StatusCode: http.StatusNotFound}
)

// Share code errors. An expired code is reported the same way as an unknown
// one: both resolve to the same client-visible outcome.
var (
	ErrShareCodeInvalid = &AppError{Code: "SHARE_CODE_INVALID", Message: "Invalid or expired share code", StatusCode: http.StatusNotFound}
)

// Feed and channel errors.
var (
	ErrFeedUnavailable    = &AppError{Code: "FEED_UNAVAILABLE", Message: "News feed unavailable", StatusCode: http.StatusBadGateway}
	ErrChannelUnavailable = &AppError{Code: "CHANNEL_UNAVAILABLE", Message: "Notification channel unavailable", StatusCode: http.StatusBadGateway}
)
