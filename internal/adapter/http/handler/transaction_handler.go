package handler

import (
	"github.com/medinasp/easypicpaytest/internal/adapter/http/dto"
	"github.com/medinasp/easypicpaytest/internal/core/ports"
	"github.com/medinasp/easypicpaytest/pkg/apperror"
	"github.com/medinasp/easypicpaytest/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles transfer endpoints.
type TransactionHandler struct {
	transferSvc ports.TransferService
	finalizer   ports.TransferFinalizer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transferSvc ports.TransferService, finalizer ports.TransferFinalizer) *TransactionHandler {
	return &TransactionHandler{
		transferSvc: transferSvc,
		finalizer:   finalizer,
	}
}

// CreateTransfer handles POST /api/v1/transactions.
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payerID, err := uuid.Parse(req.PayerID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid payer id"))
		return
	}
	payeeID, err := uuid.Parse(req.PayeeID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid payee id"))
		return
	}

	txn, err := h.transferSvc.CreateTransfer(c.Request.Context(), ports.TransferRequest{
		PayerID: payerID,
		PayeeID: payeeID,
		Amount:  req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// Authorization and notification run after the money moved; the client
	// gets the PENDING record immediately.
	if h.finalizer != nil {
		h.finalizer.FinalizeAsync(txn)
	}

	response.Created(c, dto.FromTransaction(txn))
}

// GetTransaction handles GET /api/v1/transactions/:id.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	detail, err := h.transferSvc.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromTransactionDetail(detail))
}
