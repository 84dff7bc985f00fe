package domain

import (
	"strings"
	"time"

	"github.com/medinasp/easypicpaytest/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the capability tier of a wallet.
// Only COMMON accounts may initiate transfers; MERCHANT accounts receive only.
type AccountType string

const (
	AccountTypeCommon   AccountType = "COMMON"
	AccountTypeMerchant AccountType = "MERCHANT"
)

// Valid reports whether the account type is one of the known tiers.
func (a AccountType) Valid() bool {
	return a == AccountTypeCommon || a == AccountTypeMerchant
}

// Wallet is a custodial account holding a monetary balance and identity data.
// Balance is mutated only through Debit/Credit so the non-negativity invariant
// cannot be bypassed.
type Wallet struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	TaxDocument  string          `json:"tax_document"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"` // Never expose
	AccountType  AccountType     `json:"account_type"`
	Balance      decimal.Decimal `json:"balance"` // numeric(18,2), >= 0
	CreatedAt    time.Time       `json:"created_at"`
}

// NewWallet constructs a wallet with a zero balance, validating identity data
// eagerly. Tax documents are CPF (11 chars) or CNPJ (14 chars).
func NewWallet(name, taxDocument, email, passwordHash string, accountType AccountType) (*Wallet, error) {
	w := &Wallet{
		ID:           uuid.New(),
		Name:         name,
		TaxDocument:  taxDocument,
		Email:        email,
		PasswordHash: passwordHash,
		AccountType:  accountType,
		Balance:      decimal.Zero,
		CreatedAt:    time.Now().UTC(),
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Wallet) validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return apperror.Validation("name is required")
	}
	if len(w.TaxDocument) != 11 && len(w.TaxDocument) != 14 {
		return apperror.Validation("tax document must have 11 or 14 characters")
	}
	if strings.TrimSpace(w.Email) == "" {
		return apperror.Validation("email is required")
	}
	if !w.AccountType.Valid() {
		return apperror.Validation("unknown account type")
	}
	return nil
}

// CanSendMoney reports whether the wallet may initiate transfers.
func (w *Wallet) CanSendMoney() bool {
	return w.AccountType == AccountTypeCommon
}

// Debit removes amount from the balance. The balance never goes negative.
func (w *Wallet) Debit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if w.Balance.LessThan(amount) {
		return apperror.ErrInsufficientFunds()
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

// Credit adds amount to the balance.
func (w *Wallet) Credit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return apperror.ErrInvalidAmount()
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}
