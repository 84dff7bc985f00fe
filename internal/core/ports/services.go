package ports

import (
	"context"
	"time"

	"github.com/medinasp/easypicpaytest/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(walletID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	WalletID uuid.UUID
	Email    string
}

// --- Service Ports (Business Logic) ---

// WalletService defines wallet lifecycle and query business logic.
type WalletService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*domain.Wallet, error)
	GetWalletByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	// GetBalance returns zero for wallets that do not exist.
	GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	WalletExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CreateWalletRequest holds validated input for wallet creation.
type CreateWalletRequest struct {
	Name        string
	TaxDocument string
	Email       string
	Password    string
	AccountType domain.AccountType
}

// TransferService defines the core money movement business logic.
type TransferService interface {
	CreateTransfer(ctx context.Context, req TransferRequest) (*domain.Transaction, error)
	CompleteTransfer(ctx context.Context, id uuid.UUID, authorizationCode string) error
	FailTransfer(ctx context.Context, id uuid.UUID, reason string) error
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*TransactionDetail, error)
	MarkNotificationSent(ctx context.Context, id uuid.UUID) error
}

// TransferRequest holds validated input for transfer processing.
type TransferRequest struct {
	PayerID uuid.UUID
	PayeeID uuid.UUID
	Amount  decimal.Decimal
}

// AuthService defines authentication business logic.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, time.Time, error) // token, expiry, error
}

// AuthorizationResult holds the external authorizer's decision.
type AuthorizationResult struct {
	Authorized bool
	Code       string
}

// AuthorizationService consults the external authorizer for a pending transfer.
type AuthorizationService interface {
	Authorize(ctx context.Context, transaction *domain.Transaction) (*AuthorizationResult, error)
}

// NotificationService delivers transfer outcome notifications to parties.
type NotificationService interface {
	Notify(ctx context.Context, transaction *domain.Transaction) error
}

// TransferFinalizer drives a pending transfer to its terminal state
// (authorization then notification) off the request path.
type TransferFinalizer interface {
	FinalizeAsync(transaction *domain.Transaction)
}
