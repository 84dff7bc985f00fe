package service

import (
	"context"
	"time"

	"github.com/medinasp/easypicpaytest/internal/core/domain"
	"github.com/medinasp/easypicpaytest/internal/core/ports"

	"github.com/rs/zerolog"
)

const (
	finalizeTimeout = 2 * time.Minute

	declinedReason    = "declined by authorizer"
	unreachableReason = "authorizer unavailable"
)

// TransferFinalizerImpl implements ports.TransferFinalizer. It drives a
// committed PENDING transfer through authorization to its terminal state,
// then notifies the parties.
type TransferFinalizerImpl struct {
	transferSvc ports.TransferService
	authzSvc    ports.AuthorizationService
	notifySvc   ports.NotificationService
	log         zerolog.Logger
}

// NewTransferFinalizer creates a new TransferFinalizerImpl.
func NewTransferFinalizer(
	transferSvc ports.TransferService,
	authzSvc ports.AuthorizationService,
	notifySvc ports.NotificationService,
	log zerolog.Logger,
) *TransferFinalizerImpl {
	return &TransferFinalizerImpl{
		transferSvc: transferSvc,
		authzSvc:    authzSvc,
		notifySvc:   notifySvc,
		log:         log,
	}
}

// FinalizeAsync finalizes the transfer off the request path. The caller's
// response does not wait on the authorizer or the notifier.
func (f *TransferFinalizerImpl) FinalizeAsync(transaction *domain.Transaction) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
		defer cancel()
		f.finalize(ctx, transaction)
	}()
}

func (f *TransferFinalizerImpl) finalize(ctx context.Context, txn *domain.Transaction) {
	result, err := f.authzSvc.Authorize(ctx, txn)
	switch {
	case err != nil:
		f.log.Error().Err(err).Str("tx_id", txn.ID.String()).Msg("authorization call failed")
		if err := f.transferSvc.FailTransfer(ctx, txn.ID, unreachableReason); err != nil {
			f.log.Error().Err(err).Str("tx_id", txn.ID.String()).Msg("failed to record transfer failure")
			return
		}
	case !result.Authorized:
		if err := f.transferSvc.FailTransfer(ctx, txn.ID, declinedReason); err != nil {
			f.log.Error().Err(err).Str("tx_id", txn.ID.String()).Msg("failed to record transfer failure")
			return
		}
	default:
		if err := f.transferSvc.CompleteTransfer(ctx, txn.ID, result.Code); err != nil {
			f.log.Error().Err(err).Str("tx_id", txn.ID.String()).Msg("failed to record transfer completion")
			return
		}
	}

	// Notification is best-effort: the terminal state above stands even if
	// delivery never succeeds.
	final, err := f.transferSvc.GetTransactionByID(ctx, txn.ID)
	if err != nil {
		f.log.Error().Err(err).Str("tx_id", txn.ID.String()).Msg("failed to reload transaction for notification")
		return
	}

	if err := f.notifySvc.Notify(ctx, final.Transaction); err != nil {
		f.log.Warn().Err(err).Str("tx_id", txn.ID.String()).Msg("notification undelivered")
		return
	}

	if err := f.transferSvc.MarkNotificationSent(ctx, txn.ID); err != nil {
		f.log.Error().Err(err).Str("tx_id", txn.ID.String()).Msg("failed to mark notification sent")
	}
}
