package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/medinasp/easypicpaytest/internal/core/domain"
	"github.com/medinasp/easypicpaytest/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// authorizerResponse is the external authorizer's JSON envelope.
type authorizerResponse struct {
	Status string `json:"status"`
	Data   struct {
		Authorization bool   `json:"authorization"`
		Code          string `json:"code"`
	} `json:"data"`
}

// httpAuthorizerService implements ports.AuthorizationService against an
// external authorizer endpoint.
type httpAuthorizerService struct {
	url        string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewHTTPAuthorizerService creates the external-authorizer adapter.
func NewHTTPAuthorizerService(url string, httpClient HTTPClient, log zerolog.Logger) ports.AuthorizationService {
	return &httpAuthorizerService{
		url:        url,
		httpClient: httpClient,
		log:        log,
	}
}

// Authorize consults the external authorizer for the given transfer.
// A declined transfer is a result, not an error; errors mean the
// authorizer could not be reached or answered garbage.
func (s *httpAuthorizerService) Authorize(ctx context.Context, transaction *domain.Transaction) (*ports.AuthorizationResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("authorizer request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authorizer call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, fmt.Errorf("authorizer response: %w", err)
	}

	// The authorizer signals a decline with 403 plus a fail envelope.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusForbidden {
		return nil, fmt.Errorf("authorizer status %d", resp.StatusCode)
	}

	var parsed authorizerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("authorizer payload: %w", err)
	}

	if !parsed.Data.Authorization {
		s.log.Info().
			Str("tx_id", transaction.ID.String()).
			Msg("authorizer declined transfer")
		return &ports.AuthorizationResult{Authorized: false}, nil
	}

	code := parsed.Data.Code
	if code == "" {
		code = uuid.NewString()
	}

	return &ports.AuthorizationResult{Authorized: true, Code: code}, nil
}
