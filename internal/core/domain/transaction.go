package domain

import (
	"time"

	"github.com/medinasp/easypicpaytest/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	// TransactionStatusReversed is reserved for a future compensation
	// workflow; no transition currently produces it.
	TransactionStatusReversed TransactionStatus = "REVERSED"
)

// Transaction is an immutable record of a transfer attempt between two
// wallets. It starts PENDING and transitions exactly once to a terminal
// state via Complete or Fail.
type Transaction struct {
	ID                uuid.UUID         `json:"id"`
	PayerID           uuid.UUID         `json:"payer_id"`
	PayeeID           uuid.UUID         `json:"payee_id"`
	Amount            decimal.Decimal   `json:"amount"` // > 0, numeric(18,2)
	Status            TransactionStatus `json:"status"`
	AuthorizationCode *string           `json:"authorization_code,omitempty"`
	FailureReason     *string           `json:"failure_reason,omitempty"`
	NotificationSent  bool              `json:"notification_sent"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         *time.Time        `json:"updated_at,omitempty"`
}

// NewTransaction constructs a PENDING transaction, validating eagerly so an
// invalid record is never persisted.
func NewTransaction(payerID, payeeID uuid.UUID, amount decimal.Decimal) (*Transaction, error) {
	t := &Transaction{
		ID:        uuid.New(),
		PayerID:   payerID,
		PayeeID:   payeeID,
		Amount:    amount,
		Status:    TransactionStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Transaction) validate() error {
	if t.Amount.Sign() <= 0 {
		return apperror.ErrInvalidTransaction("amount must be greater than zero")
	}
	if t.PayerID == uuid.Nil {
		return apperror.ErrInvalidTransaction("payer is required")
	}
	if t.PayeeID == uuid.Nil {
		return apperror.ErrInvalidTransaction("payee is required")
	}
	if t.PayerID == t.PayeeID {
		return apperror.ErrInvalidTransaction("cannot transfer to the same wallet")
	}
	return nil
}

// Complete marks the transaction as successfully authorized. Only legal from
// PENDING.
func (t *Transaction) Complete(authorizationCode string) error {
	if t.Status != TransactionStatusPending {
		return apperror.ErrInvalidStateTransition(string(t.Status))
	}
	now := time.Now().UTC()
	t.Status = TransactionStatusCompleted
	t.AuthorizationCode = &authorizationCode
	t.UpdatedAt = &now
	return nil
}

// Fail records the failure reason. Only legal from PENDING.
func (t *Transaction) Fail(reason string) error {
	if t.Status != TransactionStatusPending {
		return apperror.ErrInvalidStateTransition(string(t.Status))
	}
	now := time.Now().UTC()
	t.Status = TransactionStatusFailed
	t.FailureReason = &reason
	t.UpdatedAt = &now
	return nil
}

// MarkNotificationAsSent records that the external notification hook ran.
func (t *Transaction) MarkNotificationAsSent() {
	now := time.Now().UTC()
	t.NotificationSent = true
	t.UpdatedAt = &now
}

// IsPending returns true while no terminal transition has happened.
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}

// IsCompleted returns true once the transaction was authorized.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// IsFailed returns true once the transaction was rejected.
func (t *Transaction) IsFailed() bool {
	return t.Status == TransactionStatusFailed
}

// IsTerminal returns true if the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted ||
		t.Status == TransactionStatusFailed ||
		t.Status == TransactionStatusReversed
}
