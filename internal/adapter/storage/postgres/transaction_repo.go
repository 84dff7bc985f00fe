package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/medinasp/easypicpaytest/internal/core/domain"
	"github.com/medinasp/easypicpaytest/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transaction within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, payer_id, payee_id, amount, status,
		authorization_code, failure_reason, notification_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.PayerID, t.PayeeID, t.Amount, t.Status,
		t.AuthorizationCode, t.FailureReason, t.NotificationSent,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT id, payer_id, payee_id, amount, status,
		authorization_code, failure_reason, notification_sent, created_at, updated_at
		FROM transactions WHERE id = $1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetDetailByID fetches a transaction together with both wallet parties.
func (r *TransactionRepo) GetDetailByID(ctx context.Context, id uuid.UUID) (*ports.TransactionDetail, error) {
	query := `SELECT t.id, t.payer_id, t.payee_id, t.amount, t.status,
		t.authorization_code, t.failure_reason, t.notification_sent, t.created_at, t.updated_at,
		p.id, p.name, p.tax_document, p.email, p.password_hash, p.account_type, p.balance, p.created_at,
		q.id, q.name, q.tax_document, q.email, q.password_hash, q.account_type, q.balance, q.created_at
		FROM transactions t
		JOIN wallets p ON p.id = t.payer_id
		JOIN wallets q ON q.id = t.payee_id
		WHERE t.id = $1`

	t := &domain.Transaction{}
	payer := &domain.Wallet{}
	payee := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.PayerID, &t.PayeeID, &t.Amount, &t.Status,
		&t.AuthorizationCode, &t.FailureReason, &t.NotificationSent, &t.CreatedAt, &t.UpdatedAt,
		&payer.ID, &payer.Name, &payer.TaxDocument, &payer.Email,
		&payer.PasswordHash, &payer.AccountType, &payer.Balance, &payer.CreatedAt,
		&payee.ID, &payee.Name, &payee.TaxDocument, &payee.Email,
		&payee.PasswordHash, &payee.AccountType, &payee.Balance, &payee.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction detail: %w", err)
	}
	return &ports.TransactionDetail{Transaction: t, Payer: payer, Payee: payee}, nil
}

// SaveOutcome persists a transaction's terminal state fields. The status
// predicate enforces the exactly-once terminal transition at the store, so
// racing finalizations cannot both win.
func (r *TransactionRepo) SaveOutcome(ctx context.Context, t *domain.Transaction) error {
	query := `UPDATE transactions
		SET status = $1, authorization_code = $2, failure_reason = $3, updated_at = $4
		WHERE id = $5 AND status = $6`

	tag, err := r.pool.Exec(ctx, query,
		t.Status, t.AuthorizationCode, t.FailureReason, t.UpdatedAt,
		t.ID, domain.TransactionStatusPending,
	)
	if err != nil {
		return fmt.Errorf("save transaction outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save transaction outcome %s: %w", t.ID, ports.ErrNotPending)
	}
	return nil
}

// MarkNotificationSent flags a transaction as having been notified.
func (r *TransactionRepo) MarkNotificationSent(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE transactions SET notification_sent = TRUE, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", id)
	}
	return nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.PayerID, &t.PayeeID, &t.Amount, &t.Status,
		&t.AuthorizationCode, &t.FailureReason, &t.NotificationSent,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
