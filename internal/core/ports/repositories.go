package ports

import (
	"context"
	"errors"

	"github.com/medinasp/easypicpaytest/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrConflict is returned by repositories when a unique constraint is
// violated. Services translate it into a domain-level error.
var ErrConflict = errors.New("resource already exists")

// ErrNotPending is returned by TransactionRepository.SaveOutcome when the
// row is absent or already terminal. Services translate it into a
// domain-level error.
var ErrNotPending = errors.New("transaction is not pending")

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByEmail(ctx context.Context, email string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByIdentity(ctx context.Context, email, taxDocument string) (bool, error)
}

// TransactionDetail is a transaction joined with both wallet parties.
type TransactionDetail struct {
	Transaction *domain.Transaction
	Payer       *domain.Wallet
	Payee       *domain.Wallet
}

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetDetailByID(ctx context.Context, id uuid.UUID) (*TransactionDetail, error)
	SaveOutcome(ctx context.Context, transaction *domain.Transaction) error
	MarkNotificationSent(ctx context.Context, id uuid.UUID) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
