package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("TRF_004", "Insufficient funds", http.StatusPaymentRequired),
			expected: "[TRF_004] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("TRF_005", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestWalletErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"DuplicateIdentity", ErrDuplicateIdentity(), "WAL_001", 409},
		{"WalletNotFound", ErrWalletNotFound(), "WAL_002", 404},
		{"InvalidAmount", ErrInvalidAmount(), "WAL_003", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestTransferErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"PayerNotFound", ErrPayerNotFound(), "TRF_001", 404},
		{"PayeeNotFound", ErrPayeeNotFound(), "TRF_002", 404},
		{"IneligibleSender", ErrIneligibleSender(), "TRF_003", 403},
		{"InsufficientFunds", ErrInsufficientFunds(), "TRF_004", 402},
		{"InvalidTransaction", ErrInvalidTransaction("bad amount"), "TRF_005", 400},
		{"InvalidStateTransition", ErrInvalidStateTransition("COMPLETED"), "TRF_006", 409},
		{"TransactionNotFound", ErrTransactionNotFound(), "TRF_007", 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestTransferFailed_KeepsCauseInternal(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	err := ErrTransferFailed(inner)

	assert.Equal(t, "TRF_008", err.Code)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.Equal(t, "Could not process transfer", err.Message)
	assert.True(t, errors.Is(err, inner))
	assert.False(t, err.IsBusiness())
}

func TestIsBusiness(t *testing.T) {
	assert.True(t, ErrInsufficientFunds().IsBusiness())
	assert.True(t, ErrIneligibleSender().IsBusiness())
	assert.True(t, ErrDuplicateIdentity().IsBusiness())
	assert.False(t, InternalError(fmt.Errorf("boom")).IsBusiness())
	assert.False(t, ErrTransferFailed(fmt.Errorf("boom")).IsBusiness())
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_001", 401},
		{"InvalidToken", ErrInvalidToken(), "AUTH_002", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_001", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestInvalidStateTransition_MentionsStatus(t *testing.T) {
	err := ErrInvalidStateTransition("FAILED")
	assert.Contains(t, err.Message, "FAILED")
}
