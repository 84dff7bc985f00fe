package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsBusiness reports whether the error is a business-rule rejection rather
// than an infrastructure failure. Business errors are final; infrastructure
// errors roll back fully and may be retried at whole-operation granularity.
func (e *AppError) IsBusiness() bool {
	return e.HTTPStatus < http.StatusInternalServerError
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet (WAL) ----

func ErrDuplicateIdentity() *AppError {
	return New("WAL_001", "Email or tax document already registered", http.StatusConflict)
}

func ErrWalletNotFound() *AppError {
	return New("WAL_002", "Wallet not found", http.StatusNotFound)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_003", "Amount must be greater than zero", http.StatusBadRequest)
}

// ---- Transfer Business Logic (TRF) ----

func ErrPayerNotFound() *AppError {
	return New("TRF_001", "Payer wallet not found", http.StatusNotFound)
}

func ErrPayeeNotFound() *AppError {
	return New("TRF_002", "Payee wallet not found", http.StatusNotFound)
}

func ErrIneligibleSender() *AppError {
	return New("TRF_003", "Merchant accounts cannot send money", http.StatusForbidden)
}

func ErrInsufficientFunds() *AppError {
	return New("TRF_004", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrInvalidTransaction(reason string) *AppError {
	return New("TRF_005", reason, http.StatusBadRequest)
}

func ErrInvalidStateTransition(current string) *AppError {
	return New("TRF_006", fmt.Sprintf("Transaction is not pending (current status: %s)", current), http.StatusConflict)
}

func ErrTransactionNotFound() *AppError {
	return New("TRF_007", "Transaction not found", http.StatusNotFound)
}

// ErrTransferFailed wraps an infrastructure failure inside the transfer's
// atomic unit. The cause stays internal; callers only see the opaque message.
func ErrTransferFailed(err error) *AppError {
	return Wrap("TRF_008", "Could not process transfer", http.StatusInternalServerError, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a generic input validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
