package domain

import (
	"testing"

	"github.com/medinasp/easypicpaytest/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	payer := uuid.New()
	payee := uuid.New()

	tests := []struct {
		name       string
		payerID    uuid.UUID
		payeeID    uuid.UUID
		amount     string
		wantReason string
	}{
		{"valid", payer, payee, "10.00", ""},
		{"zero amount", payer, payee, "0", "amount must be greater than zero"},
		{"negative amount", payer, payee, "-1.00", "amount must be greater than zero"},
		{"missing payer", uuid.Nil, payee, "10.00", "payer is required"},
		{"missing payee", payer, uuid.Nil, "10.00", "payee is required"},
		{"self transfer", payer, payer, "10.00", "cannot transfer to the same wallet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewTransaction(tt.payerID, tt.payeeID, decimal.RequireFromString(tt.amount))
			if tt.wantReason != "" {
				require.Error(t, err)
				var appErr *apperror.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "TRF_005", appErr.Code)
				assert.Contains(t, appErr.Message, tt.wantReason)
				assert.Nil(t, tx)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, tx)
			assert.Equal(t, TransactionStatusPending, tx.Status)
			assert.True(t, tx.IsPending())
			assert.Nil(t, tx.AuthorizationCode)
			assert.Nil(t, tx.FailureReason)
			assert.False(t, tx.NotificationSent)
			assert.NotZero(t, tx.ID)
		})
	}
}

func TestTransaction_Complete(t *testing.T) {
	tx, err := NewTransaction(uuid.New(), uuid.New(), decimal.RequireFromString("25.00"))
	require.NoError(t, err)

	require.NoError(t, tx.Complete("AUTH-123"))
	assert.Equal(t, TransactionStatusCompleted, tx.Status)
	require.NotNil(t, tx.AuthorizationCode)
	assert.Equal(t, "AUTH-123", *tx.AuthorizationCode)
	require.NotNil(t, tx.UpdatedAt)
	assert.True(t, tx.IsTerminal())

	// already terminal, second transition must be rejected
	err = tx.Complete("AUTH-456")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRF_006", appErr.Code)
	assert.Contains(t, appErr.Message, string(TransactionStatusCompleted))
	assert.Equal(t, "AUTH-123", *tx.AuthorizationCode)
}

func TestTransaction_Fail(t *testing.T) {
	tx, err := NewTransaction(uuid.New(), uuid.New(), decimal.RequireFromString("25.00"))
	require.NoError(t, err)

	require.NoError(t, tx.Fail("authorizer declined"))
	assert.Equal(t, TransactionStatusFailed, tx.Status)
	require.NotNil(t, tx.FailureReason)
	assert.Equal(t, "authorizer declined", *tx.FailureReason)
	assert.True(t, tx.IsFailed())
	assert.True(t, tx.IsTerminal())

	err = tx.Complete("AUTH-123")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRF_006", appErr.Code)

	err = tx.Fail("again")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRF_006", appErr.Code)
	assert.Equal(t, "authorizer declined", *tx.FailureReason)
}

func TestTransaction_MarkNotificationAsSent(t *testing.T) {
	tx, err := NewTransaction(uuid.New(), uuid.New(), decimal.RequireFromString("5.00"))
	require.NoError(t, err)
	assert.False(t, tx.NotificationSent)

	tx.MarkNotificationAsSent()
	assert.True(t, tx.NotificationSent)
	require.NotNil(t, tx.UpdatedAt)
}
