package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/medinasp/easypicpaytest/internal/core/domain"
	"github.com/medinasp/easypicpaytest/internal/core/ports"

	"github.com/rs/zerolog"
)

// notifyRetryIntervals spaces out redelivery attempts.
var notifyRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
}

// NotificationPayload is the JSON structure posted to the notifier endpoint.
type NotificationPayload struct {
	TransactionID string `json:"transaction_id"`
	PayerID       string `json:"payer_id"`
	PayeeID       string `json:"payee_id"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	Timestamp     int64  `json:"timestamp"`
}

// httpNotificationService implements ports.NotificationService by posting
// transfer outcomes to an external notifier endpoint.
type httpNotificationService struct {
	url        string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewHTTPNotificationService creates the notifier adapter.
func NewHTTPNotificationService(url string, httpClient HTTPClient, log zerolog.Logger) ports.NotificationService {
	return &httpNotificationService{
		url:        url,
		httpClient: httpClient,
		log:        log,
	}
}

// Notify delivers the transfer outcome, retrying transient failures.
// Delivery is best-effort; callers must not roll anything back on error.
func (s *httpNotificationService) Notify(ctx context.Context, transaction *domain.Transaction) error {
	payload := NotificationPayload{
		TransactionID: transaction.ID.String(),
		PayerID:       transaction.PayerID.String(),
		PayeeID:       transaction.PayeeID.String(),
		Amount:        transaction.Amount.StringFixed(2),
		Status:        string(transaction.Status),
		Timestamp:     time.Now().Unix(),
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= len(notifyRetryIntervals); attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(notifyRetryIntervals[attempt-1]):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payloadBytes))
		if err != nil {
			return fmt.Errorf("notification request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
			s.log.Warn().Err(err).
				Str("tx_id", payload.TransactionID).
				Int("attempt", attempt+1).
				Msg("notification delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.log.Info().
				Str("tx_id", payload.TransactionID).
				Int("attempt", attempt+1).
				Msg("notification delivered")
			return nil
		}

		lastErr = fmt.Errorf("notifier status %d", resp.StatusCode)
		s.log.Warn().
			Str("tx_id", payload.TransactionID).
			Int("attempt", attempt+1).
			Int("status", resp.StatusCode).
			Msg("notifier returned non-2xx, retrying")
	}

	return fmt.Errorf("notification attempts exhausted: %w", lastErr)
}
