package dto

import (
	"github.com/medinasp/easypicpaytest/internal/core/domain"
	"github.com/medinasp/easypicpaytest/internal/core/ports"

	"github.com/shopspring/decimal"
)

// CreateWalletRequest is the request body for wallet signup.
type CreateWalletRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	TaxDocument string `json:"tax_document" binding:"required,tax_document"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	AccountType string `json:"account_type" binding:"required,oneof=COMMON MERCHANT"`
}

// LoginRequest is the request body for wallet login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// TransferRequest is the request body for creating a transfer.
type TransferRequest struct {
	PayerID string          `json:"payer" binding:"required,uuid"`
	PayeeID string          `json:"payee" binding:"required,uuid"`
	Amount  decimal.Decimal `json:"value" binding:"required"`
}

// WalletResponse is the public snapshot of a wallet. The balance is rendered
// with two decimal places; the password hash never leaves the domain layer.
type WalletResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TaxDocument string `json:"tax_document"`
	Email       string `json:"email"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
	CreatedAt   string `json:"created_at"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	WalletID string `json:"wallet_id"`
	Balance  string `json:"balance"`
}

// TransactionResponse is the response body for a transfer record.
type TransactionResponse struct {
	ID                string  `json:"id"`
	PayerID           string  `json:"payer"`
	PayeeID           string  `json:"payee"`
	Amount            string  `json:"value"`
	Status            string  `json:"status"`
	AuthorizationCode *string `json:"authorization_code,omitempty"`
	FailureReason     *string `json:"failure_reason,omitempty"`
	NotificationSent  bool    `json:"notification_sent"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         *string `json:"updated_at,omitempty"`
}

// TransactionDetailResponse joins the transfer record with snapshots of both
// wallets at read time.
type TransactionDetailResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Payer       WalletResponse      `json:"payer"`
	Payee       WalletResponse      `json:"payee"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// FromWallet maps a domain wallet to its API snapshot.
func FromWallet(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:          w.ID.String(),
		Name:        w.Name,
		TaxDocument: w.TaxDocument,
		Email:       w.Email,
		AccountType: string(w.AccountType),
		Balance:     w.Balance.StringFixed(2),
		CreatedAt:   w.CreatedAt.Format(timeLayout),
	}
}

// FromTransaction maps a domain transaction to its API representation.
func FromTransaction(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                t.ID.String(),
		PayerID:           t.PayerID.String(),
		PayeeID:           t.PayeeID.String(),
		Amount:            t.Amount.StringFixed(2),
		Status:            string(t.Status),
		AuthorizationCode: t.AuthorizationCode,
		FailureReason:     t.FailureReason,
		NotificationSent:  t.NotificationSent,
		CreatedAt:         t.CreatedAt.Format(timeLayout),
	}
	if t.UpdatedAt != nil {
		updated := t.UpdatedAt.Format(timeLayout)
		resp.UpdatedAt = &updated
	}
	return resp
}

// FromTransactionDetail maps a joined transfer read to its API representation.
func FromTransactionDetail(d *ports.TransactionDetail) TransactionDetailResponse {
	return TransactionDetailResponse{
		Transaction: FromTransaction(d.Transaction),
		Payer:       FromWallet(d.Payer),
		Payee:       FromWallet(d.Payee),
	}
}
