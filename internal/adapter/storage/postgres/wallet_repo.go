package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/medinasp/easypicpaytest/internal/core/domain"
	"github.com/medinasp/easypicpaytest/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database.
// Returns ports.ErrConflict when the email or tax document is already taken.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, name, tax_document, email, password_hash, account_type, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.Name, w.TaxDocument, w.Email,
		w.PasswordHash, w.AccountType, w.Balance, w.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ports.ErrConflict
		}
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, name, tax_document, email, password_hash, account_type, balance, created_at
		FROM wallets WHERE id = $1`

	return scanWallet(r.pool.QueryRow(ctx, query, id), "get wallet by id")
}

// GetByEmail fetches a wallet by email (non-locking read).
func (r *WalletRepo) GetByEmail(ctx context.Context, email string) (*domain.Wallet, error) {
	query := `SELECT id, name, tax_document, email, password_hash, account_type, balance, created_at
		FROM wallets WHERE email = $1`

	return scanWallet(r.pool.QueryRow(ctx, query, email), "get wallet by email")
}

// GetByIDForUpdate fetches a wallet by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, name, tax_document, email, password_hash, account_type, balance, created_at
		FROM wallets WHERE id = $1 FOR UPDATE`

	return scanWallet(tx.QueryRow(ctx, query, id), "get wallet for update")
}

// UpdateBalance updates a wallet's balance within a transaction.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// Exists reports whether a wallet with the given ID exists.
func (r *WalletRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wallets WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wallet exists: %w", err)
	}
	return exists, nil
}

// ExistsByIdentity reports whether a wallet already uses the given email or tax document.
func (r *WalletRepo) ExistsByIdentity(ctx context.Context, email, taxDocument string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wallets WHERE email = $1 OR tax_document = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email, taxDocument).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wallet identity: %w", err)
	}
	return exists, nil
}

// scanWallet is a helper to scan a single row into a Wallet.
func scanWallet(row pgx.Row, op string) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.Name, &w.TaxDocument, &w.Email,
		&w.PasswordHash, &w.AccountType, &w.Balance, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}
