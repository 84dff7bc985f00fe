package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medinasp/easypicpaytest/internal/core/domain"
	"github.com/medinasp/easypicpaytest/internal/core/ports"
	"github.com/medinasp/easypicpaytest/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const defaultLockTimeout = 10 * time.Second

// TransferServiceImpl implements ports.TransferService.
type TransferServiceImpl struct {
	txRepo      ports.TransactionRepository
	walletRepo  ports.WalletRepository
	transactor  ports.DBTransactor
	lockTimeout time.Duration
	log         zerolog.Logger
}

// NewTransferService creates a new TransferServiceImpl.
// lockTimeout bounds how long a transfer may wait on wallet row locks;
// zero selects the default.
func NewTransferService(
	txRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	lockTimeout time.Duration,
	log zerolog.Logger,
) *TransferServiceImpl {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &TransferServiceImpl{
		txRepo:      txRepo,
		walletRepo:  walletRepo,
		transactor:  transactor,
		lockTimeout: lockTimeout,
		log:         log,
	}
}

// CreateTransfer moves money between two wallets with pessimistic locking.
// The debit, credit and transaction record are committed atomically; the
// transaction is returned in PENDING state for asynchronous finalization.
func (s *TransferServiceImpl) CreateTransfer(ctx context.Context, req ports.TransferRequest) (*domain.Transaction, error) {
	txn, err := domain.NewTransaction(req.PayerID, req.PayeeID, req.Amount)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, s.infraFailure(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	payer, payee, err := s.lockWallets(ctx, dbTx, req.PayerID, req.PayeeID)
	if err != nil {
		return nil, s.infraFailure(fmt.Errorf("lock wallets: %w", err))
	}
	if payer == nil {
		return nil, apperror.ErrPayerNotFound()
	}
	if payee == nil {
		return nil, apperror.ErrPayeeNotFound()
	}

	if !payer.CanSendMoney() {
		return nil, apperror.ErrIneligibleSender()
	}

	if err := payer.Debit(req.Amount); err != nil {
		return nil, err
	}
	if err := payee.Credit(req.Amount); err != nil {
		return nil, err
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, payer.ID, payer.Balance); err != nil {
		return nil, s.infraFailure(fmt.Errorf("update payer balance: %w", err))
	}
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, payee.ID, payee.Balance); err != nil {
		return nil, s.infraFailure(fmt.Errorf("update payee balance: %w", err))
	}

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, s.infraFailure(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, s.infraFailure(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("payer_id", req.PayerID.String()).
		Str("payee_id", req.PayeeID.String()).
		Str("amount", req.Amount.StringFixed(2)).
		Msg("transfer committed")

	return txn, nil
}

// CompleteTransfer records the authorizer's approval on a pending transfer.
func (s *TransferServiceImpl) CompleteTransfer(ctx context.Context, id uuid.UUID, authorizationCode string) error {
	txn, err := s.loadTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := txn.Complete(authorizationCode); err != nil {
		return err
	}
	if err := s.saveOutcome(ctx, txn); err != nil {
		return err
	}

	s.log.Info().Str("tx_id", id.String()).Msg("transfer completed")
	return nil
}

// FailTransfer records a terminal failure on a pending transfer.
// Funds already moved stay moved; reconciliation is an operator concern.
func (s *TransferServiceImpl) FailTransfer(ctx context.Context, id uuid.UUID, reason string) error {
	txn, err := s.loadTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := txn.Fail(reason); err != nil {
		return err
	}
	if err := s.saveOutcome(ctx, txn); err != nil {
		return err
	}

	s.log.Warn().Str("tx_id", id.String()).Str("reason", reason).Msg("transfer failed")
	return nil
}

// GetTransactionByID returns a transaction joined with both wallet parties.
func (s *TransferServiceImpl) GetTransactionByID(ctx context.Context, id uuid.UUID) (*ports.TransactionDetail, error) {
	detail, err := s.txRepo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get transaction detail: %w", err))
	}
	if detail == nil {
		return nil, apperror.ErrTransactionNotFound()
	}
	return detail, nil
}

// MarkNotificationSent flags a transaction as notified.
func (s *TransferServiceImpl) MarkNotificationSent(ctx context.Context, id uuid.UUID) error {
	if err := s.txRepo.MarkNotificationSent(ctx, id); err != nil {
		return apperror.InternalError(fmt.Errorf("mark notification sent: %w", err))
	}
	return nil
}

// lockWallets acquires FOR UPDATE locks on both wallets in ascending UUID
// order so concurrent opposing transfers cannot deadlock. The returned
// wallets are mapped back to (payer, payee); either may be nil if absent.
func (s *TransferServiceImpl) lockWallets(ctx context.Context, dbTx pgx.Tx, payerID, payeeID uuid.UUID) (*domain.Wallet, *domain.Wallet, error) {
	firstID, secondID := payerID, payeeID
	if bytes.Compare(secondID[:], firstID[:]) < 0 {
		firstID, secondID = secondID, firstID
	}

	first, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if firstID == payerID {
		return first, second, nil
	}
	return second, first, nil
}

// saveOutcome persists a terminal transition. Losing the store-level status
// race means another finalization already landed; the reloaded row names the
// state that won.
func (s *TransferServiceImpl) saveOutcome(ctx context.Context, txn *domain.Transaction) error {
	err := s.txRepo.SaveOutcome(ctx, txn)
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrNotPending) {
		current, loadErr := s.loadTransaction(ctx, txn.ID)
		if loadErr != nil {
			return loadErr
		}
		return apperror.ErrInvalidStateTransition(string(current.Status))
	}
	return s.infraFailure(fmt.Errorf("save outcome: %w", err))
}

func (s *TransferServiceImpl) loadTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.infraFailure(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound()
	}
	return txn, nil
}

// infraFailure logs the cause and returns an opaque transfer error so
// internal details never reach API clients.
func (s *TransferServiceImpl) infraFailure(err error) error {
	s.log.Error().Err(err).Msg("transfer infrastructure failure")
	return apperror.ErrTransferFailed(err)
}
