package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/medinasp/easypicpaytest/internal/core/domain"
	"github.com/medinasp/easypicpaytest/internal/core/ports"
	"github.com/medinasp/easypicpaytest/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	hashSvc    ports.HashService
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(walletRepo ports.WalletRepository, hashSvc ports.HashService, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		hashSvc:    hashSvc,
		log:        log,
	}
}

// CreateWallet registers a new wallet with a unique email and tax document.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*domain.Wallet, error) {
	taken, err := s.walletRepo.ExistsByIdentity(ctx, req.Email, req.TaxDocument)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check identity: %w", err))
	}
	if taken {
		return nil, apperror.ErrDuplicateIdentity()
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	wallet, err := domain.NewWallet(req.Name, req.TaxDocument, req.Email, passwordHash, req.AccountType)
	if err != nil {
		return nil, err
	}

	// The unique constraint backstops the pre-check under concurrent signups.
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return nil, apperror.ErrDuplicateIdentity()
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("account_type", string(wallet.AccountType)).
		Msg("wallet created")

	return wallet, nil
}

// GetWalletByID fetches a wallet snapshot.
func (s *WalletServiceImpl) GetWalletByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// GetBalance returns the wallet's balance. An absent wallet reads as zero
// rather than an error; callers that need existence use WalletExists.
func (s *WalletServiceImpl) GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return decimal.Zero, nil
	}
	return wallet.Balance, nil
}

// WalletExists reports whether a wallet with the given ID exists.
func (s *WalletServiceImpl) WalletExists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.walletRepo.Exists(ctx, id)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("check wallet exists: %w", err))
	}
	return exists, nil
}
